// SPDX-License-Identifier: EPL-2.0

// Package sample holds decoded audio for the instrument.
//
// A Store maps a sample identity (normally a file path) to a Handle in an
// append-only arena. Every identity is decoded at most once:
//
//	store := sample.NewStore(sample.FileDecoder{Registry: formats.NewRegistry()})
//	h, err := store.Register("samples/piano_C4.wav")
//	_, err = store.Register("samples/piano_C4.wav") // ErrAlreadyLoaded
//
// Loaders that reference the same file from several regions use Acquire,
// which returns the existing handle or waits for a decode already in
// progress.
//
// Once loading is done, Store.Bank returns a frozen snapshot. Voices resolve
// their handles against the bank, which takes no locks.
package sample
