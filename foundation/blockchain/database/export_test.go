package database

// TamperBlock gives tests direct access to a stored block so they can
// simulate the chain being modified after the fact.
func (db *Database) TamperBlock(index int, fn func(b *Block)) {
	db.mu.Lock()
	defer db.mu.Unlock()

	fn(&db.chain[index])
}
