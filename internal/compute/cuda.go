//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -lcudart
#include <cuda_runtime.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/san-kum/raycastview/internal/dynamo"
)

type CUDADevice struct {
	id   int
	name string
}

func NewCUDADevice(id int) (Device, error) {
	var count C.int
	if rc := C.cudaGetDeviceCount(&count); rc != C.cudaSuccess || int(count) <= id {
		return nil, fmt.Errorf("cuda device %d of %d: %w", id, int(count), dynamo.ErrDeviceUnavailable)
	}
	if err := cudaCheck("set device", C.cudaSetDevice(C.int(id))); err != nil {
		return nil, fmt.Errorf("%v: %w", err, dynamo.ErrDeviceUnavailable)
	}

	var props C.struct_cudaDeviceProp
	if err := cudaCheck("device properties", C.cudaGetDeviceProperties(&props, C.int(id))); err != nil {
		return nil, fmt.Errorf("%v: %w", err, dynamo.ErrDeviceUnavailable)
	}

	return &CUDADevice{id: id, name: C.GoString(&props.name[0])}, nil
}

func (d *CUDADevice) Name() string { return "cuda (" + d.name + ")" }
func (d *CUDADevice) Kind() Kind   { return KindCUDA }
func (d *CUDADevice) ID() int      { return d.id }

func (d *CUDADevice) Close() error {
	return cudaCheck("device reset", C.cudaDeviceReset())
}

func (d *CUDADevice) Alloc(size int) (DeviceBuffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("alloc %d bytes: %w", size, dynamo.ErrTransfer)
	}
	var ptr unsafe.Pointer
	if err := cudaCheck("malloc", C.cudaMalloc(&ptr, C.size_t(size))); err != nil {
		return nil, err
	}
	return &cudaBuffer{ptr: ptr, size: size}, nil
}

type cudaBuffer struct {
	ptr  unsafe.Pointer
	size int
}

func (b *cudaBuffer) Len() int { return b.size }

func (b *cudaBuffer) Upload(src []byte, offset int) error {
	if err := checkRange(len(src), offset, b.size); err != nil || len(src) == 0 {
		return err
	}
	return cudaCheck("memcpy htod", C.cudaMemcpy(unsafe.Add(b.ptr, offset),
		unsafe.Pointer(&src[0]), C.size_t(len(src)), C.cudaMemcpyHostToDevice))
}

func (b *cudaBuffer) Download(dst []byte, offset int) error {
	if err := checkRange(len(dst), offset, b.size); err != nil || len(dst) == 0 {
		return err
	}
	return cudaCheck("memcpy dtoh", C.cudaMemcpy(unsafe.Pointer(&dst[0]),
		unsafe.Add(b.ptr, offset), C.size_t(len(dst)), C.cudaMemcpyDeviceToHost))
}

func (b *cudaBuffer) Free() error {
	if b.ptr == nil {
		return nil
	}
	err := cudaCheck("free", C.cudaFree(b.ptr))
	b.ptr = nil
	return err
}

func cudaCheck(op string, rc C.cudaError_t) error {
	if rc != C.cudaSuccess {
		return fmt.Errorf("cuda %s: %s: %w", op, C.GoString(C.cudaGetErrorString(rc)), dynamo.ErrTransfer)
	}
	return nil
}
