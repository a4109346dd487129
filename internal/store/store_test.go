package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("store helpers", func() {
	It("maps pgx.ErrNoRows to ErrNotFound", func() {
		Expect(notFound(pgx.ErrNoRows)).To(MatchError(ErrNotFound))
		Expect(notFound(fmt.Errorf("scan: %w", pgx.ErrNoRows))).To(MatchError(ErrNotFound))

		other := errors.New("boom")
		Expect(notFound(other)).To(Equal(other))
	})

	It("detects unique violations", func() {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
		Expect(IsUniqueViolation(err)).To(BeTrue())
		Expect(IsUniqueViolation(&pgconn.PgError{Code: "23503"})).To(BeFalse())
		Expect(IsUniqueViolation(errors.New("plain"))).To(BeFalse())
	})

	It("detects foreign key violations", func() {
		err := fmt.Errorf("insert activity: %w", &pgconn.PgError{Code: "23503"})
		Expect(IsForeignKeyViolation(err)).To(BeTrue())
		Expect(IsForeignKeyViolation(&pgconn.PgError{Code: "23505"})).To(BeFalse())
		Expect(IsForeignKeyViolation(errors.New("plain"))).To(BeFalse())
	})

	It("stamps events without a time with the current time", func() {
		happened := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
		Expect(eventTime(happened).Time).To(Equal(happened))
		Expect(eventTime(happened).Valid).To(BeTrue())

		before := time.Now()
		Expect(eventTime(time.Time{}).Time).To(BeTemporally(">=", before))
	})

	It("round-trips nullable timestamps", func() {
		Expect(timePtr(nullableTimestamptz(nil))).To(BeNil())

		now := time.Now().UTC()
		got := timePtr(nullableTimestamptz(&now))
		Expect(got).NotTo(BeNil())
		Expect(got.Equal(now)).To(BeTrue())
	})

	It("escapes LIKE wildcards", func() {
		Expect(escapeLike("100%_done\\")).To(Equal(`100\%\_done\\`))
		Expect(escapeLike("plain")).To(Equal("plain"))
	})
})
