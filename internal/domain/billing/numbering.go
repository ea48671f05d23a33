package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
)

const (
	// DefaultNumberPrefix is the literal that starts every invoice number
	DefaultNumberPrefix = "INV"
	// MaxDailySequence is the largest sequence a five digit number can carry
	MaxDailySequence = 99999

	numberDateLayout = "20060102"
)

// InvoiceNumber is the parsed form of PREFIX-YYYYMMDD-NNNNN
type InvoiceNumber struct {
	Prefix   string
	Date     string
	Sequence int
}

// String formats the number with a five digit, zero padded sequence
func (n InvoiceNumber) String() string {
	return fmt.Sprintf("%s-%s-%05d", n.Prefix, n.Date, n.Sequence)
}

// FormatInvoiceNumber builds the invoice number for the given calendar day and sequence
func FormatInvoiceNumber(prefix string, day time.Time, sequence int) string {
	return InvoiceNumber{Prefix: prefix, Date: day.Format(numberDateLayout), Sequence: sequence}.String()
}

// ParseInvoiceNumber splits an invoice number into its parts.
// A number whose trailing segment is not a non-negative integer is corrupt
// and yields an integrity error.
func ParseInvoiceNumber(s string) (InvoiceNumber, error) {
	last := strings.LastIndex(s, "-")
	if last <= 0 {
		return InvoiceNumber{}, corruptNumber(s, nil)
	}
	head, tail := s[:last], s[last+1:]

	seq, err := strconv.Atoi(tail)
	if err != nil || seq < 0 {
		return InvoiceNumber{}, corruptNumber(s, err)
	}

	n := InvoiceNumber{Sequence: seq}
	if i := strings.LastIndex(head, "-"); i >= 0 {
		n.Prefix, n.Date = head[:i], head[i+1:]
	} else {
		n.Prefix = head
	}
	return n, nil
}

func corruptNumber(s string, cause error) error {
	err := shared.NewIntegrityError("CORRUPT_INVOICE_NUMBER",
		fmt.Sprintf("previous invoice number %q has no numeric sequence", s))
	if cause != nil {
		return err.WithCause(cause)
	}
	return err
}

// NumberSource looks up the number of the most recently created invoice
// (highest internal id) issued within [from, to). It returns "" when there is none.
type NumberSource interface {
	LastNumberIssuedBetween(ctx context.Context, from, to time.Time) (string, error)
}

// NumberAllocator derives the next day-scoped invoice number.
// It must run inside the transaction that inserts the invoice; the unique
// index on the number breaks the remaining race, and callers retry on it.
type NumberAllocator struct {
	Prefix string
}

// NewNumberAllocator creates an allocator; an empty prefix means DefaultNumberPrefix
func NewNumberAllocator(prefix string) NumberAllocator {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return NumberAllocator{Prefix: prefix}
}

// Next returns the number following the last one issued on now's calendar day.
// Day boundaries are taken in now's location.
func (a NumberAllocator) Next(ctx context.Context, source NumberSource, now time.Time) (string, error) {
	from := StartOfDay(now)
	to := from.AddDate(0, 0, 1)

	last, err := source.LastNumberIssuedBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("lookup last invoice number: %w", err)
	}

	seq := 1
	if last != "" {
		prev, err := ParseInvoiceNumber(last)
		if err != nil {
			return "", err
		}
		seq = prev.Sequence + 1
	}
	if seq > MaxDailySequence {
		return "", shared.NewIntegrityError("INVOICE_SEQUENCE_EXHAUSTED",
			"daily invoice sequence exhausted for "+from.Format(numberDateLayout))
	}

	prefix := a.Prefix
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return FormatInvoiceNumber(prefix, from, seq), nil
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth truncates t to the first day of its month in its own location
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
