// Package formstate memodelkan siklus form halaman dashboard:
// Viewing → Editing → Submitting → Viewing/Editing, plus Detail untuk satu item.
package formstate

import (
	"errors"
	"fmt"
)

type State int

const (
	Viewing State = iota
	Editing
	Submitting
	Detail
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Detail:
		return "detail"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	ErrSubmitInProgress  = errors.New("permintaan sebelumnya masih diproses")
	ErrInvalidTransition = errors.New("transisi form tidak valid")
)

// Form menyimpan snapshot terakhir dari store dan draft yang sedang diedit.
// Snapshot nil artinya record belum ada.
type Form[T any] struct {
	state    State
	snapshot *T
	draft    T
}

// New: tanpa record → Editing (form langsung terbuka); ada record → Viewing.
func New[T any](snapshot *T) *Form[T] {
	f := &Form[T]{snapshot: snapshot, state: Viewing}
	if snapshot == nil {
		f.state = Editing
	} else {
		f.draft = *snapshot
	}
	return f
}

func (f *Form[T]) State() State { return f.state }
func (f *Form[T]) Snapshot() *T { return f.snapshot }
func (f *Form[T]) Draft() T { return f.draft }
func (f *Form[T]) HasRecord() bool { return f.snapshot != nil }

func (f *Form[T]) invalid(event string) error {
	return fmt.Errorf("%w: %s saat %s", ErrInvalidTransition, event, f.state)
}

// SetDraft hanya berlaku selama form bisa diedit.
func (f *Form[T]) SetDraft(d T) error {
	if !f.Editable() {
		return f.invalid("ubah draft")
	}
	f.draft = d
	return nil
}

func (f *Form[T]) Edit() error {
	if f.state != Viewing && f.state != Detail {
		return f.invalid("edit")
	}
	f.state = Editing
	return nil
}

func (f *Form[T]) OpenDetail() error {
	if f.state != Viewing {
		return f.invalid("buka detail")
	}
	f.state = Detail
	return nil
}

func (f *Form[T]) CloseDetail() error {
	if f.state != Detail {
		return f.invalid("tutup detail")
	}
	f.state = Viewing
	return nil
}

func (f *Form[T]) Submit() error {
	switch f.state {
	case Submitting:
		return ErrSubmitInProgress
	case Editing:
		f.state = Submitting
		return nil
	}
	return f.invalid("submit")
}

// Succeed menerima hasil refetch setelah mutasi berhasil.
func (f *Form[T]) Succeed(refetched *T) error {
	if f.state != Submitting {
		return f.invalid("sukses")
	}
	f.snapshot = refetched
	if refetched != nil {
		f.draft = *refetched
	} else {
		var zero T
		f.draft = zero
	}
	f.state = Viewing
	return nil
}

// Fail: kembali ke Editing, draft dipertahankan.
func (f *Form[T]) Fail() error {
	if f.state != Submitting {
		return f.invalid("gagal")
	}
	f.state = Editing
	return nil
}

// Cancel membuang draft dan mengembalikan nilai snapshot terakhir.
func (f *Form[T]) Cancel() error {
	if f.state != Editing {
		return f.invalid("batal")
	}
	if f.snapshot != nil {
		f.draft = *f.snapshot
	} else {
		var zero T
		f.draft = zero
	}
	f.state = Viewing
	return nil
}

// Editable: sedang Editing, atau record belum ada (selama tidak Submitting).
func (f *Form[T]) Editable() bool {
	if f.state == Submitting {
		return false
	}
	return f.state == Editing || f.snapshot == nil
}

func (f *Form[T]) ShowSubmit() bool { return f.Editable() }
func (f *Form[T]) ShowCancel() bool { return f.state == Editing && f.snapshot != nil }
func (f *Form[T]) ShowEditButton() bool { return f.snapshot != nil && (f.state == Viewing || f.state == Detail) }
func (f *Form[T]) IsSubmitting() bool { return f.state == Submitting }
