// Package compute provides the memory devices a raycast buffer can live on.
//
// A [Device] hands out [DeviceBuffer]s; host code reaches their contents only
// through synchronous Upload/Download copies:
//
//   - host: emulated device memory in the Go heap, always available
//   - opengl: shader storage buffers on the current GL context
//   - cuda: CUDA device memory, only in builds with the cuda tag
//
// Select a device by kind:
//
//	dev, err := compute.Open(compute.KindAuto, 0)
//	buf, err := dev.Alloc(n)
//	err = buf.Download(dst, offset)
//
// Build with CUDA support:
//
//	go build -tags cuda ./...
//
// Requesting a backend the build or machine lacks fails with
// [dynamo.ErrDeviceUnavailable]; there is no silent fallback.
package compute
