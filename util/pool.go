package util

import "sync"

// TransferUnit is the most bytes moved per socket read.  Inbound
// chunks handed to the negotiation engine never exceed this size.
const TransferUnit = 4096

// BufPool provides reusable transfer-unit buffers so the session loop
// does not allocate on every read.
var BufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, TransferUnit)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return BufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	BufPool.Put(buf)
}
