package huffman

// FrequencyTable maps each distinct symbol to its occurrence count.
// Counts are always positive; the table is built once per run and not
// mutated afterwards.
type FrequencyTable map[Symbol]int

// CountFrequencies tallies the symbols of one input. The counts sum to
// len(symbols). Compressing nothing is undefined, so an empty sequence
// is rejected with ErrEmptyInput instead of producing a degenerate tree.
func CountFrequencies(symbols []Symbol) (FrequencyTable, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}
	freqs := make(FrequencyTable)
	for _, s := range symbols {
		freqs[s]++
	}
	return freqs, nil
}
