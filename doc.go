// Package framer composites a user photo into a PNG frame that has a
// transparent cutout.
//
// # Overview
//
// A frame is a PNG whose transparent area marks where the photo goes.
// framer finds the bounding box of that area once per frame, scales the
// photo to cover it, draws the photo first and the frame on top, and
// encodes the flattened result as a lossless PNG ready for download.
//
// # Quick Start
//
//	import "github.com/gogpu/framer"
//
//	asset, err := framer.LoadFrameAsset(framePNG)
//	if err != nil {
//	    return err
//	}
//	photo, err := framer.DecodePhoto(photoJPEG)
//	if err != nil {
//	    return err
//	}
//	out, err := framer.ComposeAsset(photo, asset)
//	if err != nil {
//	    return err
//	}
//	exp, err := framer.NewEncoder(framer.Desktop).Encode(ctx, out)
//
// # Cutout detection
//
// A pixel belongs to the cutout when its alpha is below
// [DefaultAlphaThreshold]. Non-rectangular or disjoint transparent areas
// are approximated by one bounding box spanning all of them. A frame
// without transparent pixels yields the full frame as its cutout, in
// which case the photo ends up completely hidden behind the frame.
//
// # Export
//
// Two [Encoder] strategies exist: [DataURLEncoder] encodes synchronously
// and also returns a data URL, [BlobEncoder] encodes on a background
// worker and reports through a callback. Both produce identical PNG
// bytes. [DetectEnvironment] and [NewEncoder] pick one from a user agent.
//
// # Sessions
//
// [Session] keeps the current frame and the latest composite for an
// interactive flow. Decoding happens off the caller's goroutine and a
// render superseded by a newer request is dropped with [ErrStale].
//
// # Frame library
//
// [Library] stores custom frames as data URLs behind an opaque ID and
// caches their decoded assets. The ID "default" always resolves to a
// built-in frame.
//
// # Logging
//
// framer is silent by default. Use [SetLogger] to route its debug and
// info records to any [log/slog] handler.
package framer
