// Shared-library entry points for foreign callers. Build with:
//
//	go build -buildmode=c-shared -o libuuidgen.so ./ffi
//
// Every exported function returns an int32 status code (0 ok, 1 entropy
// failure, 2 invalid parameter, 3 buffer too small, 99 unknown) and writes
// results into caller-owned buffers. See src/abi for the boundary contract.
package main

/*
#include <stdint.h>
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/clearwood/uuidgen/src/abi"
)

//export uuid_generate_v4
func uuid_generate_v4(uuidBytes *C.uint8_t) C.int32_t {
	return C.int32_t(abi.GenerateV4(unsafe.Pointer(uuidBytes)))
}

//export uuid_to_string
func uuid_to_string(uuidBytes *C.uint8_t, uuidString *C.char, bufferSize C.size_t) C.int32_t {
	return C.int32_t(abi.ToString(unsafe.Pointer(uuidBytes), unsafe.Pointer(uuidString), uint64(bufferSize)))
}

//export uuid_get_info
func uuid_get_info(uuidBytes *C.uint8_t, version *C.uint8_t, variant *C.uint8_t) C.int32_t {
	return C.int32_t(abi.GetInfo(unsafe.Pointer(uuidBytes), unsafe.Pointer(version), unsafe.Pointer(variant)))
}

//export uuid_compare
func uuid_compare(uuid1Bytes *C.uint8_t, uuid2Bytes *C.uint8_t, areEqual *C.uint8_t) C.int32_t {
	return C.int32_t(abi.Compare(unsafe.Pointer(uuid1Bytes), unsafe.Pointer(uuid2Bytes), unsafe.Pointer(areEqual)))
}

func main() {}
