package sieve_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ismael-VC/primesieve/pkg/sieve"
)

func Test_Primes_Includes_NonWheel_Primes_When_Start_Below_7(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		start uint64
		stop  uint64
		want  []uint64
	}{
		{name: "FromZero", start: 0, stop: 30, want: []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}},
		{name: "FromTwo", start: 2, stop: 5, want: []uint64{2, 3, 5}},
		{name: "JustTwo", start: 2, stop: 2, want: []uint64{2}},
		{name: "BelowAnyPrime", start: 0, stop: 1, want: nil},
		{name: "BetweenSmallPrimes", start: 4, stop: 6, want: []uint64{5}},
		{name: "WheelOnly", start: 6, stop: 13, want: []uint64{7, 11, 13}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := sieve.Primes(testCase.start, testCase.stop)
			require.NoError(t, err)
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("Primes(%d, %d) mismatch (-want +got):\n%s",
					testCase.start, testCase.stop, diff)
			}
		})
	}
}

func Test_Count_Matches_Prime_Counting_Function(t *testing.T) {
	t.Parallel()

	// pi(10^k) for k = 1..6.
	testCases := []struct {
		stop uint64
		want uint64
	}{
		{10, 4},
		{100, 25},
		{1000, 168},
		{10000, 1229},
		{100000, 9592},
		{1000000, 78498},
	}

	for _, testCase := range testCases {
		got, err := sieve.Count(0, testCase.stop)
		require.NoError(t, err)
		assert.Equal(t, testCase.want, got, "pi(%d)", testCase.stop)
	}
}

func Test_Count_Returns_ErrInvalidRange_When_Start_Above_Stop(t *testing.T) {
	t.Parallel()

	_, err := sieve.Count(10, 9)
	assert.ErrorIs(t, err, sieve.ErrInvalidRange)

	err = sieve.ForEach(10, 9, func(uint64) error { return nil })
	assert.ErrorIs(t, err, sieve.ErrInvalidRange)
}

func Test_ForEach_Visits_Primes_In_Order(t *testing.T) {
	t.Parallel()

	var got []uint64
	err := sieve.ForEach(0, 100, func(p uint64) error {
		got = append(got, p)

		return nil
	})
	require.NoError(t, err)

	want := trialDivisionPrimes(2, 100)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ForEach(0, 100) mismatch (-want +got):\n%s", diff)
	}
}

func Test_ForEach_Stops_On_Callback_Error(t *testing.T) {
	t.Parallel()

	errEnough := errors.New("enough")

	var seen []uint64
	err := sieve.ForEach(0, 1000000, func(p uint64) error {
		seen = append(seen, p)
		if len(seen) == 5 {
			return errEnough
		}

		return nil
	})
	assert.Equal(t, errEnough, err, "callback error must propagate unchanged")
	assert.Equal(t, []uint64{2, 3, 5, 7, 11}, seen)
}
