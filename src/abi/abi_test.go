package abi_test

import (
	"bytes"
	"regexp"
	"sync"
	"testing"
	"unsafe"

	"github.com/clearwood/uuidgen/src/abi"
	"github.com/clearwood/uuidgen/src/uuid"
)

var canonicalRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Test vector with version 4 and the RFC 4122 variant fixed by construction.
var infoVector = [16]byte{6: 0x40, 8: 0x80}

func ptr(b []byte) unsafe.Pointer {
	return unsafe.Pointer(&b[0])
}

func TestGenerateV4(t *testing.T) {
	out := make([]byte, uuid.Size)
	if st := abi.GenerateV4(ptr(out)); st != uuid.StatusOK {
		t.Fatalf("status = %d, want %d", st, uuid.StatusOK)
	}

	u, err := uuid.FromBytes(out)
	if err != nil {
		t.Fatalf("output is not a valid identifier: %v", err)
	}
	if u.Version() != 4 || u.Variant() != 2 {
		t.Fatalf("version=%d variant=%d, want 4 and 2", u.Version(), u.Variant())
	}
}

func TestGenerateV4_NilOut(t *testing.T) {
	if st := abi.GenerateV4(nil); st != uuid.StatusInvalidParameter {
		t.Fatalf("status = %d, want %d", st, uuid.StatusInvalidParameter)
	}
}

func TestToString(t *testing.T) {
	out := make([]byte, abi.StringBufLen)
	if st := abi.ToString(ptr(infoVector[:]), ptr(out), abi.StringBufLen); st != uuid.StatusOK {
		t.Fatalf("status = %d, want %d", st, uuid.StatusOK)
	}

	if out[uuid.EncodedLen] != 0 {
		t.Fatalf("missing NUL terminator, got %#02x", out[uuid.EncodedLen])
	}
	s := string(out[:uuid.EncodedLen])
	if s != "00000000-0000-4000-8000-000000000000" {
		t.Fatalf("rendered %q", s)
	}
}

func TestToString_GeneratedRoundTrip(t *testing.T) {
	in := make([]byte, uuid.Size)
	if st := abi.GenerateV4(ptr(in)); st != uuid.StatusOK {
		t.Fatalf("generate status = %d", st)
	}

	out := make([]byte, abi.StringBufLen)
	if st := abi.ToString(ptr(in), ptr(out), abi.StringBufLen); st != uuid.StatusOK {
		t.Fatalf("to_string status = %d", st)
	}

	s := string(out[:uuid.EncodedLen])
	if !canonicalRe.MatchString(s) {
		t.Fatalf("not canonical v4 form: %q", s)
	}

	back, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(back.Bytes(), in) {
		t.Fatalf("round trip mismatch: %x != %x", back.Bytes(), in)
	}
}

func TestToString_BufferTooSmall(t *testing.T) {
	for _, capacity := range []uint64{0, 10, 36} {
		out := make([]byte, 64)
		for i := range out {
			out[i] = 0xAA
		}

		st := abi.ToString(ptr(infoVector[:]), ptr(out), capacity)
		if st != uuid.StatusBufferTooSmall {
			t.Fatalf("capacity %d: status = %d, want %d", capacity, st, uuid.StatusBufferTooSmall)
		}

		// Nothing may be written on failure.
		for i, b := range out {
			if b != 0xAA {
				t.Fatalf("capacity %d: byte %d written (%#02x)", capacity, i, b)
			}
		}
	}
}

func TestToString_NeverWritesPastMinimum(t *testing.T) {
	out := make([]byte, 64)
	for i := range out {
		out[i] = 0xAA
	}

	if st := abi.ToString(ptr(infoVector[:]), ptr(out), 64); st != uuid.StatusOK {
		t.Fatalf("status = %d", st)
	}
	for i := abi.StringBufLen; i < len(out); i++ {
		if out[i] != 0xAA {
			t.Fatalf("byte %d written (%#02x) beyond the string and terminator", i, out[i])
		}
	}
}

func TestToString_NilArgs(t *testing.T) {
	out := make([]byte, abi.StringBufLen)
	if st := abi.ToString(nil, ptr(out), abi.StringBufLen); st != uuid.StatusInvalidParameter {
		t.Fatalf("nil in: status = %d", st)
	}
	if st := abi.ToString(ptr(infoVector[:]), nil, abi.StringBufLen); st != uuid.StatusInvalidParameter {
		t.Fatalf("nil out: status = %d", st)
	}
}

func TestGetInfo(t *testing.T) {
	var version, variant byte
	st := abi.GetInfo(ptr(infoVector[:]), unsafe.Pointer(&version), unsafe.Pointer(&variant))
	if st != uuid.StatusOK {
		t.Fatalf("status = %d", st)
	}
	if version != 4 || variant != 2 {
		t.Fatalf("version=%d variant=%d, want 4 and 2", version, variant)
	}
}

func TestGetInfo_NilArgs(t *testing.T) {
	var version, variant byte
	cases := []struct {
		name             string
		in, outV, outVar unsafe.Pointer
	}{
		{"nil in", nil, unsafe.Pointer(&version), unsafe.Pointer(&variant)},
		{"nil version", ptr(infoVector[:]), nil, unsafe.Pointer(&variant)},
		{"nil variant", ptr(infoVector[:]), unsafe.Pointer(&version), nil},
	}
	for _, tc := range cases {
		if st := abi.GetInfo(tc.in, tc.outV, tc.outVar); st != uuid.StatusInvalidParameter {
			t.Fatalf("%s: status = %d, want %d", tc.name, st, uuid.StatusInvalidParameter)
		}
	}
}

func TestCompare(t *testing.T) {
	a := make([]byte, uuid.Size)
	if st := abi.GenerateV4(ptr(a)); st != uuid.StatusOK {
		t.Fatalf("generate status = %d", st)
	}

	var equal byte = 0xFF
	if st := abi.Compare(ptr(a), ptr(a), unsafe.Pointer(&equal)); st != uuid.StatusOK {
		t.Fatalf("self compare status = %d", st)
	}
	if equal != 1 {
		t.Fatalf("self compare = %d, want 1", equal)
	}

	b := append([]byte(nil), a...)
	b[15] ^= 0x01
	if st := abi.Compare(ptr(a), ptr(b), unsafe.Pointer(&equal)); st != uuid.StatusOK {
		t.Fatalf("compare status = %d", st)
	}
	if equal != 0 {
		t.Fatalf("compare = %d, want 0", equal)
	}
}

func TestCompare_NilArgs(t *testing.T) {
	a := make([]byte, uuid.Size)
	var equal byte
	if st := abi.Compare(nil, ptr(a), unsafe.Pointer(&equal)); st != uuid.StatusInvalidParameter {
		t.Fatalf("nil a: status = %d", st)
	}
	if st := abi.Compare(ptr(a), nil, unsafe.Pointer(&equal)); st != uuid.StatusInvalidParameter {
		t.Fatalf("nil b: status = %d", st)
	}
	if st := abi.Compare(ptr(a), ptr(a), nil); st != uuid.StatusInvalidParameter {
		t.Fatalf("nil out: status = %d", st)
	}
}

// The boundary must be independently correct under concurrent callers with
// no shared state between calls.
func TestBoundary_ConcurrentCalls(t *testing.T) {
	const goroutines = 32
	const perG = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	errs := make(chan string, goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			raw := make([]byte, uuid.Size)
			str := make([]byte, abi.StringBufLen)
			var version, variant byte

			for i := 0; i < perG; i++ {
				if st := abi.GenerateV4(ptr(raw)); st != uuid.StatusOK {
					errs <- "generate failed"
					return
				}
				if st := abi.ToString(ptr(raw), ptr(str), abi.StringBufLen); st != uuid.StatusOK {
					errs <- "to_string failed"
					return
				}
				if st := abi.GetInfo(ptr(raw), unsafe.Pointer(&version), unsafe.Pointer(&variant)); st != uuid.StatusOK {
					errs <- "get_info failed"
					return
				}
				if version != 4 || variant != 2 {
					errs <- "wrong version/variant under concurrency"
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Fatal(msg)
	}
}
