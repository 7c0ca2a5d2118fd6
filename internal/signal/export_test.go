package signal

import "os"

// Fire delivers sig to the guard without involving the OS.
func (g *Guard) Fire(sig os.Signal) {
	g.fire(sig)
}
