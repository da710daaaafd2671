package namelock_test

import (
	"reflect"
	"testing"

	"voicesort/pkg/namelock"
)

func TestUniquePrefixLocks(t *testing.T) {
	l := namelock.New([]string{"Kafka", "Asta", "Arlan"})

	text, state := l.TextChanged("ka")
	if state != namelock.Locked {
		t.Fatalf("state = %v, want locked", state)
	}
	if text != "Kafka" {
		t.Errorf("text = %q, want Kafka", text)
	}
	if !l.IsLocked() {
		t.Error("IsLocked false after lock")
	}
}

func TestAmbiguousPrefixStaysFree(t *testing.T) {
	l := namelock.New([]string{"Asta", "Arlan"})

	if _, state := l.TextChanged("a"); state != namelock.Free {
		t.Errorf("state = %v, want free", state)
	}
}

func TestContainmentMatchWithoutPrefixStaysFree(t *testing.T) {
	// "fka" matches only Kafka by containment but is not a prefix, so the
	// field must not silently rewrite what the user typed.
	l := namelock.New([]string{"Kafka", "Asta"})

	text, state := l.TextChanged("fka")
	if state != namelock.Free {
		t.Errorf("state = %v, want free", state)
	}
	if text != "fka" {
		t.Errorf("text = %q, want unchanged", text)
	}
}

func TestLockedFieldIgnoresFurtherText(t *testing.T) {
	l := namelock.New([]string{"Kafka"})
	l.TextChanged("ka")

	text, state := l.TextChanged("Kafkax")
	if state != namelock.Locked || text != "Kafka" {
		t.Errorf("locked field changed: %q / %v", text, state)
	}
}

func TestBackspaceUnlocksAndDeletes(t *testing.T) {
	l := namelock.New([]string{"Kafka"})
	l.TextChanged("ka")

	if got := l.Backspace(); got != "Kafk" {
		t.Errorf("after backspace = %q, want Kafk", got)
	}
	if l.IsLocked() {
		t.Error("still locked after backspace")
	}
}

func TestDeletingNeverLocks(t *testing.T) {
	l := namelock.New([]string{"Kafka"})
	l.TextChanged("kx")

	// Shrinking from "kx" to "k" is a deletion; it must not lock even
	// though "k" completes uniquely.
	if _, state := l.TextChanged("k"); state != namelock.Free {
		t.Errorf("state = %v, want free", state)
	}
}

func TestClearingResets(t *testing.T) {
	l := namelock.New([]string{"Kafka"})
	l.TextChanged("ka")
	l.Reset()

	if l.IsLocked() || l.Text() != "" {
		t.Errorf("after reset: locked=%v text=%q", l.IsLocked(), l.Text())
	}
}

func TestMatches(t *testing.T) {
	l := namelock.New([]string{"Dan Heng", "Asta", "Arlan"})

	got := l.Matches("an")
	want := []string{"Dan Heng", "Arlan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("matches = %v, want %v", got, want)
	}
	if l.Matches("   ") != nil {
		t.Error("blank text produced matches")
	}
}
