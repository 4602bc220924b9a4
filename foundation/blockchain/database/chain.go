package database

import (
	"errors"
	"fmt"
)

// Set of errors returned when verifying the chain.
var (
	ErrHashMismatch = errors.New("block hash does not match its content")
	ErrBrokenLink   = errors.New("previous hash does not match parent block")
)

// ValidateLink checks the block's stored hash matches its content and that
// it points at the specified previous block.
func (b Block) ValidateLink(previousBlock Block) error {
	if hash := b.ComputeHash(); b.Hash != hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrHashMismatch, b.Hash, hash)
	}

	if b.PrevHash != previousBlock.Hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrBrokenLink, b.PrevHash, previousBlock.Hash)
	}

	return nil
}

// VerifyChain walks the blocks from index 1 validating every block against
// its parent. The genesis block is not validated on its own.
func VerifyChain(blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateLink(blocks[i-1]); err != nil {
			return fmt.Errorf("block[%d]: %w", i, err)
		}
	}

	return nil
}
