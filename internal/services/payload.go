package services

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/luckfunc/gardenstock/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeJSON keeps numbers as their source text.
var decodeJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// ErrMalformedJSON is returned when a source body is not valid JSON.
var ErrMalformedJSON = errors.New("malformed JSON")

const (
	gearKey      = "gear"
	seedsKey     = "seeds"
	eggsKey      = "egg"
	updatedAtKey = "updatedAt"
)

var timestampLayouts = []struct {
	layout string
	utc    bool
}{
	{layout: "2006-01-02T15:04:05.999999999"},
	{layout: "2006-01-02 15:04:05.999999999"},
	{layout: "2006-01-02T15:04"},
	{layout: "2006-01-02", utc: true},
}

// document is one decoded source body. fields is nil when the body is valid
// JSON but not an object.
type document struct {
	fields map[string]interface{}
}

// decode parses a whole body. Trailing data after the first value is an
// error; a repeated key keeps its last value.
func decode(body []byte) (document, error) {
	if !json.Valid(body) {
		return document{}, ErrMalformedJSON
	}
	var v interface{}
	if err := decodeJSON.Unmarshal(body, &v); err != nil {
		return document{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	fields, _ := v.(map[string]interface{})
	return document{fields: fields}, nil
}

// stringItems reads the array under key. ok is false when the key is absent
// or does not hold an array.
func (d document) stringItems(key string) (items []string, ok bool) {
	arr, ok := d.fields[key].([]interface{})
	if !ok {
		return nil, false
	}
	items = make([]string, 0, len(arr))
	for _, v := range arr {
		items = append(items, itemText(v))
	}
	return items, true
}

func itemText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	case stdjson.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return ""
}

// truthyText returns a displayable field value, or "" when the field is
// absent, falsy, or not a string or number.
func (d document) truthyText(key string) string {
	switch x := d.fields[key].(type) {
	case string:
		return x
	case stdjson.Number:
		if f, err := x.Float64(); err == nil && f != 0 {
			return x.String()
		}
	}
	return ""
}

// parseUpdatedAt reads the optional updatedAt field as an absolute instant.
func (d document) parseUpdatedAt(loc *time.Location) (time.Time, bool) {
	switch x := d.fields[updatedAtKey].(type) {
	case string:
		return parseTimestamp(x, loc)
	case stdjson.Number:
		ms, err := x.Float64()
		if err != nil || ms == 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)), true
	}
	return time.Time{}, false
}

func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, l := range timestampLayouts {
		in := loc
		if l.utc {
			in = time.UTC
		}
		if t, err := time.ParseInLocation(l.layout, s, in); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// 解析天气数据
func (d document) parseWeather() *models.WeatherInfo {
	return &models.WeatherInfo{
		Icon:        d.truthyText("icon"),
		Description: d.truthyText("currentWeather"),
		CropBonus:   d.truthyText("cropBonuses"),
	}
}
