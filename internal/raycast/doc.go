// Package raycast describes the flat raycast sensor buffer: one RGB image
// per (world, camera), stored back to back on the host or on a device.
//
// Image addressing:
//
//	image_index = world*NumCams + max(view, 0)
//	byte_offset = image_index*BytesPerImage + 3*(j + i*Resolution)
//
// A [Reader] is the only way the viewer touches the buffer. It is chosen once
// per session from the buffer's [ExecMode]: host buffers are viewed in place,
// device buffers are copied into a scratch slice allocated at construction.
package raycast
