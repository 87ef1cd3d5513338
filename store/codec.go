// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store persists a Scale and its Ranges to a flat key/value
// store.
//
// The Scale is stored under the key "scale" as
//
//	{"start": number, "end": number, "tickMarkers": [number, ...]}
//
// and the Ranges under "ranges" as an array of
//
//	{"start": number, "end": number, "color": string, "label": string}
//
// Decoding is lenient: a Scale record that cannot be used decodes as
// absent, and Range records that cannot be used are dropped without
// affecting the rest.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aclements/go-numline/interval"
)

// ErrMalformedState is returned when a persisted record is missing
// or its fields are missing or unusable.
var ErrMalformedState = errors.New("malformed persisted state")

// Keys of the persisted records.
const (
	ScaleKey  = "scale"
	RangesKey = "ranges"
)

// ScaleRecord is the persisted form of an interval.Scale. Start and
// End are pointers so that an absent field is distinguishable from
// zero.
type ScaleRecord struct {
	Start       *float64  `json:"start"`
	End         *float64  `json:"end"`
	TickMarkers []float64 `json:"tickMarkers"`
}

// RangeRecord is the persisted form of an interval.Range.
type RangeRecord struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Color *string  `json:"color,omitempty"`
	Label *string  `json:"label,omitempty"`
}

// EncodeScale returns the record for s.
func EncodeScale(s *interval.Scale) ScaleRecord {
	tm := s.TickMarkers
	if tm == nil {
		tm = []float64{}
	}
	return ScaleRecord{
		Start:       interval.Ptr(s.Start()),
		End:         interval.Ptr(s.End()),
		TickMarkers: append([]float64(nil), tm...),
	}
}

// DecodeScale returns the Scale described by rec. A nil rec, or one
// without start or end, yields ErrMalformedState. A zero start or end
// is a valid value, not an absent one.
//
// If rec has no tick markers, the Scale keeps its generated markers.
func DecodeScale(rec *ScaleRecord) (*interval.Scale, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: no scale record", ErrMalformedState)
	}
	if rec.Start == nil || rec.End == nil {
		return nil, fmt.Errorf("%w: scale record missing start or end", ErrMalformedState)
	}
	s, err := interval.NewScale(*rec.Start, *rec.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	if rec.TickMarkers != nil {
		s.SetTickMarkers(rec.TickMarkers)
	}
	return s, nil
}

// EncodeRanges returns the records for rs, in order.
func EncodeRanges(rs []*interval.Range) []RangeRecord {
	recs := make([]RangeRecord, len(rs))
	for i, r := range rs {
		recs[i] = RangeRecord{
			Start: interval.Ptr(r.Start()),
			End:   interval.Ptr(r.End()),
			Color: optString(r.Color),
			Label: optString(r.Label),
		}
	}
	return recs
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DecodeRange returns the Range described by rec.
func DecodeRange(rec RangeRecord) (*interval.Range, error) {
	if rec.Start == nil || rec.End == nil {
		return nil, fmt.Errorf("%w: range record missing start or end", ErrMalformedState)
	}
	var color, label string
	if rec.Color != nil {
		color = *rec.Color
	}
	if rec.Label != nil {
		label = *rec.Label
	}
	r, err := interval.NewRange(*rec.Start, *rec.End, label, color)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	return r, nil
}

// DecodeRanges returns the Ranges described by recs, in order,
// skipping records that do not describe a valid Range.
func DecodeRanges(recs []RangeRecord) []*interval.Range {
	rs := make([]*interval.Range, 0, len(recs))
	for _, rec := range recs {
		if r, err := DecodeRange(rec); err == nil {
			rs = append(rs, r)
		}
	}
	return rs
}

// UnmarshalScale decodes a JSON scale record.
func UnmarshalScale(data []byte) (*interval.Scale, error) {
	var rec *ScaleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	return DecodeScale(rec)
}

// UnmarshalRanges decodes a JSON array of range records. Elements
// that are not valid range records are skipped and counted in
// dropped. The error is non-nil only if data is not an array at all.
func UnmarshalRanges(data []byte) (rs []*interval.Range, dropped int, err error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return []*interval.Range{}, 0, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	rs = make([]*interval.Range, 0, len(raws))
	for _, raw := range raws {
		var rec RangeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			dropped++
			continue
		}
		r, err := DecodeRange(rec)
		if err != nil {
			dropped++
			continue
		}
		rs = append(rs, r)
	}
	return rs, dropped, nil
}
