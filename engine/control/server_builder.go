package control

// ServerBuilderOption is a functional option for configuring a Server.
// Use the With* functions to create options that are applied directly to the server instance.
type ServerBuilderOption func(*serverImpl)

// WithPort sets the TCP port the control server listens on.
// Values <= 0 are ignored.
//
// Parameters:
//   - port: listen port (default 9910)
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithPort(port int) ServerBuilderOption {
	return func(s *serverImpl) {
		if port > 0 {
			s.port = port
		}
	}
}

// WithErrorCallback sets the sink for connection and dispatch errors.
//
// Parameters:
//   - callback: function receiving each error
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithErrorCallback(callback func(err error)) ServerBuilderOption {
	return func(s *serverImpl) {
		s.onError = callback
	}
}
