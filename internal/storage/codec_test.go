package storage

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"zetafield/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	run := Stamp(model.RunRecord{
		ID:           "run-7",
		Kind:         "fractal",
		CreatedAtUTC: "2026-02-01T12:00:00Z",
		Levels: []model.FractalLevel{{
			Level:     1,
			Zeta:      0.9568,
			ZetaPrime: 0.9,
			Radius:    math.Hypot(1.0, 0.5) / 2,
			Positions: []model.FractalPosition{
				{X: 0.559, Y: 0, Zeta: 0.9568, ZetaPrime: 0.9, Level: 1},
			},
		}},
		Gradients: []model.GradientRecord{{
			Kind:      "vertical",
			Magnitude: 1.9,
			Operators: map[string]float64{"paralum": 0.8, "paraflu": 0.5, "paralux": 0.6},
		}},
		SpiralPath: []model.SpiralPoint{{X: 1, Y: 0, Zeta: 0}},
		Summary:    map[string]float64{"levels": 2},
	})

	payload, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRun(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(run, decoded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", run, decoded)
	}
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: 99, CodecVersion: CurrentCodecVersion},
		ID:              "run-x",
	}
	payload, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestDecodeRunRejectsGarbage(t *testing.T) {
	if _, err := DecodeRun([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStampSetsCurrentVersions(t *testing.T) {
	stamped := Stamp(model.RunRecord{ID: "run-1"})
	if stamped.SchemaVersion != CurrentSchemaVersion || stamped.CodecVersion != CurrentCodecVersion {
		t.Fatalf("stamp did not set versions: %+v", stamped.VersionedRecord)
	}
}
