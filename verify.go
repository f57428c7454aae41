package parsort

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Report is the result of Verify.
type Report struct {
	Len int
	// Descents holds every index i with data[i] > data[i+1].
	Descents *roaring64.Bitmap
}

// Sorted reports whether no descent was found.
func (r Report) Sorted() bool {
	return r.Descents == nil || r.Descents.IsEmpty()
}

// Verify scans data for adjacent pairs that are out of order.
func Verify(data []int64) Report {
	descents := roaring64.New()
	for i := 1; i < len(data); i++ {
		if data[i-1] > data[i] {
			descents.Add(uint64(i - 1))
		}
	}
	descents.RunOptimize()
	return Report{Len: len(data), Descents: descents}
}

// Fingerprint is an order-independent digest of a multiset of records.
// Two slices holding the same values in any order have equal fingerprints.
type Fingerprint struct {
	Count uint64
	Sum   uint64 // Wrapping sum of the raw values.
	Mixed uint64 // Wrapping sum of the mixed values.
	Xor   uint64 // Xor of the mixed values.
}

// FingerprintOf computes the fingerprint of data.
func FingerprintOf(data []int64) Fingerprint {
	var fp Fingerprint
	for _, v := range data {
		m := mix64(uint64(v))
		fp.Count++
		fp.Sum += uint64(v)
		fp.Mixed += m
		fp.Xor ^= m
	}
	return fp
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
