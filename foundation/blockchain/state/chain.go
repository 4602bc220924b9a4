package state

import (
	"fmt"
	"io"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// VerifyChain checks every block after genesis still hashes to its stored
// hash and points at the hash of the block before it.
func (s *State) VerifyChain() error {
	return s.db.Verify()
}

// IsChainValid reports if the chain passes verification. It has no side
// effects and can be called any number of times.
func (s *State) IsChainValid() bool {
	return s.VerifyChain() == nil
}

// WriteChain writes a human readable dump of every block to the writer.
func (s *State) WriteChain(w io.Writer) error {
	for _, block := range s.QueryBlocks() {
		if err := writeBlock(w, block); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================

// writeBlock writes the fields of a single block followed by a separator.
func writeBlock(w io.Writer, block database.Block) error {
	_, err := fmt.Fprintf(w, "Hash: %s\nPrevious Hash: %s\nTransactions: %s\nNonce: %d\nTimestamp: %s\n%s\n",
		block.Hash,
		block.PrevHash,
		database.CanonicalTransfers(block.Trans),
		block.Nonce,
		block.TimeStamp,
		strings.Repeat("-", 30),
	)

	return err
}
