package model

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const DaysInWeek = 7

type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	UnknownDay Day = -1
)

var dayNames = [DaysInWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (day Day) String() string {
	if !day.Valid() {
		return "Unknown"
	}
	return dayNames[day]
}

func (day Day) Valid() bool {
	return day >= Monday && day <= Sunday
}

// ParseDay accepts English day names, any prefix of at least three letters and 1-based
// numbers (1 = Monday, 7 = Sunday). Anything else yields UnknownDay.
func ParseDay(value string) Day {
	value = strings.ToLower(strings.TrimSpace(value))
	if number, err := strconv.Atoi(value); err == nil {
		return DayFromNumber(number)
	}
	if len(value) < 3 {
		return UnknownDay
	}
	for i, name := range dayNames {
		if strings.HasPrefix(strings.ToLower(name), value) {
			return Day(i)
		}
	}
	return UnknownDay
}

// DayFromNumber maps 1 = Monday through 7 = Sunday; anything else yields UnknownDay
func DayFromNumber(number int) Day {
	if number < 1 || number > DaysInWeek {
		return UnknownDay
	}
	return Day(number - 1)
}

func (day Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(day.String())
}

// UnmarshalJSON accepts a day name or number as ParseDay does, quoted or not
func (day *Day) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*day = ParseDay(name)
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*day = dayFromFloat(number)
	return nil
}

func dayFromFloat(number float64) Day {
	if number != math.Trunc(number) || number < 1 || number > DaysInWeek {
		return UnknownDay
	}
	return DayFromNumber(int(number))
}

// DayDecodeHook lets mapstructure decode days by name or 1-based number, matching UnmarshalJSON
func DayDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Day(0)) {
		return data, nil
	}

	value := reflect.ValueOf(data)
	switch from.Kind() {
	case reflect.String:
		return ParseDay(value.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value.Int() < 1 || value.Int() > DaysInWeek {
			return UnknownDay, nil
		}
		return DayFromNumber(int(value.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if value.Uint() > DaysInWeek {
			return UnknownDay, nil
		}
		return DayFromNumber(int(value.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return dayFromFloat(value.Float()), nil
	}
	return data, nil
}
