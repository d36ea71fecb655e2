package session

import "github.com/Carmen-Shannon/marcher-go/engine/camera"

// SessionOption is a functional option used to configure a session on creation.
type SessionOption func(*sessionImpl)

// WithCamera sets the camera controller the session reads its view from.
//
// Parameters:
//   - c: the camera controller to use
//
// Returns:
//   - SessionOption: the functional option
func WithCamera(c camera.Controller) SessionOption {
	return func(s *sessionImpl) {
		if c != nil {
			s.camera = c
		}
	}
}

// WithScrollEffect sets the initial scroll-driven post effect and its shaping.
//
// Parameters:
//   - effect: the effect index (0 disables)
//   - strength: the effect strength
//   - speed: the effect animation speed
//
// Returns:
//   - SessionOption: the functional option
func WithScrollEffect(effect int, strength, speed float32) SessionOption {
	return func(s *sessionImpl) {
		s.scrollEffect = effect
		s.scrollStrength = strength
		s.scrollSpeed = speed
	}
}

// WithTextureTransform sets the initial user texture tiling and offset.
//
// Parameters:
//   - tilingX: horizontal tiling factor
//   - tilingY: vertical tiling factor
//   - offsetX: horizontal UV offset
//   - offsetY: vertical UV offset
//
// Returns:
//   - SessionOption: the functional option
func WithTextureTransform(tilingX, tilingY, offsetX, offsetY float32) SessionOption {
	return func(s *sessionImpl) {
		s.texTilingX = tilingX
		s.texTilingY = tilingY
		s.texOffsetX = offsetX
		s.texOffsetY = offsetY
	}
}
