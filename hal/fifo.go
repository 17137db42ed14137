package hal

// fifoWriter is a transmitter with a bounded hardware FIFO.
type fifoWriter interface {
	txFull() bool
	put(b byte) error
}

// writeFIFO hands b to w, or reports ErrBusy while the FIFO is full.
func writeFIFO(w fifoWriter, b byte) error {
	if w.txFull() {
		return ErrBusy
	}
	return w.put(b)
}
