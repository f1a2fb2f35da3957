package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow reports whether a * b would overflow uint64.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil
	}
	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}
	return nil
}

// SafeMultiply multiplies two uint64 values, failing instead of wrapping on overflow.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// CheckPayloadSize computes count*elemSize for an array/list payload, failing
// on a negative count, on overflow, or on a result above math.MaxInt32.
func CheckPayloadSize(count int32, elemSize int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative length %d", count)
	}
	total, err := SafeMultiply(uint64(count), uint64(elemSize))
	if err != nil {
		return 0, err
	}
	if total > math.MaxInt32 {
		return 0, fmt.Errorf("payload size %d exceeds addressable limit", total)
	}
	return int(total), nil
}
