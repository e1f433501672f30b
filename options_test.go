// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"errors"
	"testing"
)

func TestDefaultOptions_MatchesReferenceDefaults(t *testing.T) {
	o := DefaultOptions()
	if o.NumIterations != 15 {
		t.Errorf("NumIterations = %d, want 15", o.NumIterations)
	}
	if !o.BlockSplitting {
		t.Error("BlockSplitting should default to true")
	}
	if o.BlockSplittingMax != 15 {
		t.Errorf("BlockSplittingMax = %d, want 15", o.BlockSplittingMax)
	}
	if o.FindMinimumRec != 9 {
		t.Errorf("FindMinimumRec = %d, want 9", o.FindMinimumRec)
	}
	if o.RanStateW != 1 || o.RanStateZ != 2 {
		t.Errorf("RanState = (%d,%d), want (1,2)", o.RanStateW, o.RanStateZ)
	}
	if o.NumThreads != 1 {
		t.Errorf("NumThreads = %d, want 1", o.NumThreads)
	}
}

func TestNormalized_ClampsInvalidValues(t *testing.T) {
	o := normalized(&Options{NumIterations: -5, NumThreads: 0, FindMinimumRec: 1})
	if o.NumIterations < 1 {
		t.Errorf("NumIterations not clamped: %d", o.NumIterations)
	}
	if o.NumThreads < 1 {
		t.Errorf("NumThreads not clamped: %d", o.NumThreads)
	}
	if o.FindMinimumRec < 2 {
		t.Errorf("FindMinimumRec not clamped: %d", o.FindMinimumRec)
	}
}

func TestValidateOptions_RejectsUnsafeValues(t *testing.T) {
	if err := ValidateOptions(nil); err != nil {
		t.Errorf("nil options should validate, got %v", err)
	}
	if err := ValidateOptions(&Options{NumIterations: 0}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for NumIterations=0, got %v", err)
	}
	if err := ValidateOptions(&Options{NumIterations: 1, NumThreads: 0}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for NumThreads=0, got %v", err)
	}
	if err := ValidateOptions(&Options{NumIterations: 1, NumThreads: 1}); err != nil {
		t.Errorf("valid options should pass, got %v", err)
	}
}

func TestWithCancel_StopsOptimizerEarly(t *testing.T) {
	opts, canceler := WithCancel(&Options{NumIterations: 100, BlockSplitting: true})
	canceler.RequestCancel()

	data := make([]byte, 1<<16)
	for i := range data {
		data[i] = byte(i)
	}
	if _, err := Deflate(data, opts); err != nil {
		t.Fatalf("Deflate with pre-canceled context should still return a usable (partial) result, got error: %v", err)
	}
}
