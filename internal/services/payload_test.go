package services

import (
	"errors"
	"testing"
	"time"
)

func mustDecode(t *testing.T, body string) document {
	t.Helper()
	doc, err := decode([]byte(body))
	if err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return doc
}

func TestStringItemsShapes(t *testing.T) {
	items, ok := mustDecode(t, `{"gear":["Trowel", 7, null, true, {"b":1,"a":2}]}`).stringItems(gearKey)
	if !ok {
		t.Fatalf("expected array to be accepted")
	}
	want := []string{"Trowel", "7", "null", "true", `{"a":2,"b":1}`}
	if len(items) != len(want) {
		t.Fatalf("expected %v, got %v", want, items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d: expected %q, got %q", i, want[i], items[i])
		}
	}

	for _, body := range []string{`{}`, `{"gear":null}`, `{"gear":{"a":1}}`, `null`, `["Trowel"]`} {
		if _, ok := mustDecode(t, body).stringItems(gearKey); ok {
			t.Fatalf("expected %s to be rejected", body)
		}
	}

	items, ok = mustDecode(t, `{"gear":[]}`).stringItems(gearKey)
	if !ok || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil items, got %v %v", items, ok)
	}
}

func TestDuplicateKeyKeepsLastValue(t *testing.T) {
	items, ok := mustDecode(t, `{"seeds":["Old"],"seeds":["New"]}`).stringItems(seedsKey)
	if !ok || len(items) != 1 || items[0] != "New" {
		t.Fatalf("expected [New], got %v %v", items, ok)
	}
}

func TestDecodeRejectsMalformedBodies(t *testing.T) {
	for _, body := range []string{
		``,
		`   `,
		`{`,
		`{"gear":[}`,
		`<html>`,
		`{"gear":["a",]}`,
		`{"n":01}`,
		`{"s":"\q"}`,
		`{"seeds":["Carrot"]} trailing`,
		`{"seeds":["Carrot"]}{"x":1}`,
	} {
		if _, err := decode([]byte(body)); !errors.Is(err, ErrMalformedJSON) {
			t.Fatalf("expected %q to be rejected, got %v", body, err)
		}
	}
	if _, err := decode([]byte("null")); err != nil {
		t.Fatalf("expected null to be valid JSON: %v", err)
	}
	if _, err := decode([]byte("{\"gear\":[]}\n")); err != nil {
		t.Fatalf("expected trailing whitespace to be accepted: %v", err)
	}
}

func TestWeatherFalsyFieldsFallBack(t *testing.T) {
	w := mustDecode(t, `{"icon":"","currentWeather":0,"cropBonuses":["x"]}`).parseWeather()
	if w.Icon != "" || w.Description != "" || w.CropBonus != "" {
		t.Fatalf("expected empty fields, got %+v", w)
	}
	w = mustDecode(t, `{"icon":"☀️","currentWeather":"Sunny","cropBonuses":2}`).parseWeather()
	if w.Icon != "☀️" || w.Description != "Sunny" || w.CropBonus != "2" {
		t.Fatalf("unexpected weather %+v", w)
	}
}

func TestParseUpdatedAtFormats(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cases := []struct {
		body string
		want time.Time
	}{
		{`{"updatedAt":"2026-10-17T03:45:10Z"}`, time.Date(2026, 10, 17, 3, 45, 10, 0, time.UTC)},
		{`{"updatedAt":"2026-10-17T03:45:10.250+08:00"}`, time.Date(2026, 10, 16, 19, 45, 10, 250e6, time.UTC)},
		{`{"updatedAt":"2026-10-17T11:45:10"}`, time.Date(2026, 10, 17, 3, 45, 10, 0, time.UTC)},
		{`{"updatedAt":1792215910000}`, time.UnixMilli(1792215910000)},
	}
	for _, tc := range cases {
		got, ok := mustDecode(t, tc.body).parseUpdatedAt(loc)
		if !ok {
			t.Fatalf("expected %s to parse", tc.body)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.body, tc.want, got)
		}
	}

	for _, body := range []string{`{}`, `{"updatedAt":""}`, `{"updatedAt":"yesterday"}`, `{"updatedAt":0}`, `{"updatedAt":true}`} {
		if _, ok := mustDecode(t, body).parseUpdatedAt(loc); ok {
			t.Fatalf("expected %s to be ignored", body)
		}
	}
}
