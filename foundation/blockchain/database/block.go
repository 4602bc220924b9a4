package database

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Set of errors returned while mining a block.
var (
	ErrMiningExhausted   = errors.New("mining attempts exhausted")
	ErrDifficultyTooHigh = errors.New("difficulty exceeds hash length")
)

// TimestampFormat is the layout used for the block timestamp. The timestamp
// has second precision and is part of the hashed content.
const TimestampFormat = "2006-01-02 15:04:05"

// GenesisPrevHash is the previous hash recorded in the genesis block.
const GenesisPrevHash = "0"

// HashLength is the number of hex characters in a block hash.
const HashLength = 2 * sha256.Size

// =============================================================================

// Block represents a group of transfers batched together. Once a block has
// been mined and appended to the chain it is treated as immutable.
type Block struct {
	TimeStamp string     `json:"timestamp"`     // Time the block was constructed.
	PrevHash  string     `json:"previous_hash"` // Hash of the previous block in the chain.
	Trans     []Transfer `json:"transactions"`  // Transfers batched into this block.
	Nonce     uint64     `json:"nonce"`         // Value identified to solve the hash puzzle.
	Hash      string     `json:"hash"`          // Hash of the block's current content.
}

// NewBlock constructs a new block with the timestamp fixed to the current
// time and a nonce of zero. The hash is computed immediately.
func NewBlock(prevHash string, trans []Transfer) Block {
	b := Block{
		TimeStamp: time.Now().Format(TimestampFormat),
		PrevHash:  prevHash,
		Trans:     copyTransfers(trans),
		Nonce:     0,
	}
	b.Hash = b.ComputeHash()

	return b
}

// GenesisBlock constructs the first block of a chain. It holds a single
// zero value placeholder transfer and is never mined.
func GenesisBlock(issuer AccountID, placeholder AccountID) Block {
	return NewBlock(GenesisPrevHash, []Transfer{{Sender: issuer, Receiver: placeholder, Amount: 0}})
}

// ComputeHash returns the hash for the block's current content. The content
// is the canonical transfers followed by the previous hash, the timestamp
// and the nonce in decimal.
func (b Block) ComputeHash() string {
	h := sha256.New()
	h.Write(CanonicalTransfers(b.Trans))
	h.Write([]byte(b.PrevHash))
	h.Write([]byte(b.TimeStamp))
	h.Write([]byte(strconv.FormatUint(b.Nonce, 10)))

	return common.Bytes2Hex(h.Sum(nil))
}

// Copy returns a deep copy of the block.
func (b Block) Copy() Block {
	b.Trans = copyTransfers(b.Trans)
	return b
}

// =============================================================================

// ProgressInterval is the number of attempts between calls to the progress
// function of a mining operation.
const ProgressInterval = 100_000

// MineOptions bounds and observes a mining operation.
type MineOptions struct {
	MaxAttempts uint64                      // Zero means no limit.
	EvHandler   func(v string, args ...any) // Optional trace of the operation.
	Progress    func(attempts uint64)       // Optional, called every ProgressInterval attempts.
}

// Mine does the work of finding a nonce that produces a hash with difficulty
// leading zeros. Pointer semantics are being used since the nonce and hash
// are updated in place. The block's hash always matches its content, even
// when mining is cancelled or runs out of attempts. It returns the number
// of nonces that were tried.
func (b *Block) Mine(ctx context.Context, difficulty uint, opts MineOptions) (uint64, error) {
	ev := func(v string, args ...any) {
		if opts.EvHandler != nil {
			opts.EvHandler(v, args...)
		}
	}

	if difficulty > HashLength {
		return 0, fmt.Errorf("difficulty %d: %w", difficulty, ErrDifficultyTooHigh)
	}

	ev("database: Mine: MINING: started: difficulty[%d]", difficulty)

	// Loop until we find a solution for the block.
	var attempts uint64
	for !IsHashSolved(difficulty, b.Hash) {

		// Did we timeout trying to solve the problem.
		if err := ctx.Err(); err != nil {
			ev("database: Mine: MINING: CANCELLED: attempts[%d]", attempts)
			return attempts, err
		}

		if opts.MaxAttempts > 0 && attempts >= opts.MaxAttempts {
			ev("database: Mine: MINING: EXHAUSTED: attempts[%d]", attempts)
			return attempts, ErrMiningExhausted
		}

		b.Nonce++
		b.Hash = b.ComputeHash()

		attempts++
		if opts.Progress != nil && attempts%ProgressInterval == 0 {
			opts.Progress(attempts)
		}
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}
	}

	ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", b.PrevHash, b.Hash, attempts)

	return attempts, nil
}

// IsHashSolved checks the hash to make sure it complies with the proof of
// work rules. We need to match a difficulty number of 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	const match = "0000000000000000000000000000000000000000000000000000000000000000"

	if difficulty > uint(len(match)) || len(hash) < int(difficulty) {
		return false
	}

	return strings.HasPrefix(hash, match[:difficulty])
}
