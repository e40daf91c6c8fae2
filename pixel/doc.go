// Package pixel implements 1-bit color and image types suitable for OLED and LCD pixel displays.
//
// This module provides a monochrome color model, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, in the two memory layouts used by small displays.
package pixel
