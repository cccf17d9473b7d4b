package store

import (
	"fmt"

	"github.com/christopherklint97/hebdo/internal/ledger"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	arrivalsKey   = "arrivals"
	departuresKey = "departures"
)

// encodeRecord renders rec as
// {"Lundi":{"arrivals":[8,0],"departures":[16,0]},...}
// with the days in week order.
func encodeRecord(rec ledger.Record) ([]byte, error) {
	out := []byte("{}")
	for _, day := range ledger.Days {
		e := rec[day]
		var err error
		out, err = sjson.SetBytes(out, string(day)+"."+arrivalsKey, []int{e.Arrival.Hours, e.Arrival.Minutes})
		if err != nil {
			return nil, fmt.Errorf("encoding %s arrival: %w", day, err)
		}
		out, err = sjson.SetBytes(out, string(day)+"."+departuresKey, []int{e.Departure.Hours, e.Departure.Minutes})
		if err != nil {
			return nil, fmt.Errorf("encoding %s departure: %w", day, err)
		}
	}
	return out, nil
}

// decodeRecord reads a document written by encodeRecord. Only a document
// that is not a JSON object is an error; a day with missing or malformed
// pairs is left out of the record.
func decodeRecord(data []byte) (ledger.Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrCorrupt)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrCorrupt, doc.Type)
	}

	rec := make(ledger.Record, len(ledger.Days))
	for _, day := range ledger.Days {
		entry := doc.Get(string(day))
		if !entry.IsObject() {
			continue
		}
		arrival, ok := decodePair(entry.Get(arrivalsKey))
		if !ok {
			continue
		}
		departure, ok := decodePair(entry.Get(departuresKey))
		if !ok {
			continue
		}
		rec[day] = ledger.Entry{Arrival: arrival, Departure: departure}
	}
	return rec, nil
}

func decodePair(r gjson.Result) (ledger.TimeOfDay, bool) {
	if !r.IsArray() {
		return ledger.TimeOfDay{}, false
	}
	items := r.Array()
	if len(items) != 2 {
		return ledger.TimeOfDay{}, false
	}
	for _, it := range items {
		if it.Type != gjson.Number || it.Num != float64(it.Int()) {
			return ledger.TimeOfDay{}, false
		}
	}
	return ledger.TimeOfDay{Hours: int(items[0].Int()), Minutes: int(items[1].Int())}, true
}
