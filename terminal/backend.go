package terminal

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// Init enters raw mode
	Init() error
	// Fini restores the mode saved by Init
	Fini()

	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) (int, error)

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	Read(stopCh <-chan struct{}) ([]byte, error)
}
