// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import "github.com/cpmech/gosl/io"

// Journal records notifications and warnings issued while integrating one
// increment. A nil journal records nothing
type Journal struct {
	Verbose bool     // print messages as they arrive
	msgs    []string // recorded messages
}

// NewJournal returns a new journal
func NewJournal(verbose bool) *Journal {
	return &Journal{Verbose: verbose}
}

// Notify records a notification
func (o *Journal) Notify(msg string, prm ...interface{}) {
	if o == nil {
		return
	}
	s := io.Sf(msg, prm...)
	o.msgs = append(o.msgs, s)
	if o.Verbose {
		io.Pf("%s\n", s)
	}
}

// Warn records a warning
func (o *Journal) Warn(msg string, prm ...interface{}) {
	if o == nil {
		return
	}
	s := "warning: " + io.Sf(msg, prm...)
	o.msgs = append(o.msgs, s)
	if o.Verbose {
		io.Pfyel("%s\n", s)
	}
}

// Messages returns all recorded messages
func (o *Journal) Messages() []string {
	if o == nil {
		return nil
	}
	return o.msgs
}

// Reset clears recorded messages
func (o *Journal) Reset() {
	if o == nil {
		return
	}
	o.msgs = nil
}
