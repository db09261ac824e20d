package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Relation labels used by the dangling-references gauge and sweep reports.
const (
	RelationBookAuthor   = "book_author"
	RelationLoanBook     = "loan_book"
	RelationLoanBorrower = "loan_borrower"
)

// Report lists the dangling references found by one sweep.
type Report struct {
	BooksMissingAuthor   []int64 // book ids whose author no longer exists
	LoansMissingBook     []int64 // loan ids whose book no longer exists
	LoansMissingBorrower []int64 // loan ids whose borrower no longer exists
}

func (r Report) Clean() bool {
	return len(r.BooksMissingAuthor) == 0 &&
		len(r.LoansMissingBook) == 0 &&
		len(r.LoansMissingBorrower) == 0
}

// Reconciler periodically scans the catalog for dangling references left
// behind by unguarded deletes and by the create-time check/insert window.
// It only reports, through the process log, the audit log and a gauge;
// records are never repaired or removed.
type Reconciler struct {
	books    BookStore
	loans    LoanStore
	gate     *Gate
	audit    Recorder
	dangling *prometheus.GaugeVec
	interval time.Duration
}

// NewDanglingReferencesGauge builds the gauge a Reconciler reports into.
// Register it with the process registry before wiring it in.
func NewDanglingReferencesGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "catalog",
			Name:      "dangling_references",
			Help:      "Records whose foreign id names no existing record, by relation",
		},
		[]string{"relation"},
	)
}

func NewReconciler(books BookStore, loans LoanStore, gate *Gate, audit Recorder, dangling *prometheus.GaugeVec, interval time.Duration) *Reconciler {
	return &Reconciler{
		books:    books,
		loans:    loans,
		gate:     gate,
		audit:    audit,
		dangling: dangling,
		interval: interval,
	}
}

// Run sweeps on a fixed ticker until ctx is cancelled. Sweep errors are
// logged and the next tick tries again.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil {
				log.Printf("reconcile sweep failed: %v", err)
			}
		}
	}
}

// Sweep walks every book and loan once and reports the dangling references
// it finds. The walk is not isolated from concurrent writes, so a record
// created or deleted mid-sweep may be missed until the next run.
func (r *Reconciler) Sweep(ctx context.Context) (Report, error) {
	var report Report

	books, err := r.books.ListAll(ctx)
	if err != nil {
		return Report{}, err
	}
	for _, b := range books {
		ok, err := r.gate.AuthorExists(ctx, b.AuthorID)
		if err != nil {
			return Report{}, err
		}
		if !ok {
			report.BooksMissingAuthor = append(report.BooksMissingAuthor, b.ID)
		}
	}

	loans, err := r.loans.ListAll(ctx)
	if err != nil {
		return Report{}, err
	}
	for _, l := range loans {
		ok, err := r.gate.BookExists(ctx, l.BookID)
		if err != nil {
			return Report{}, err
		}
		if !ok {
			report.LoansMissingBook = append(report.LoansMissingBook, l.ID)
		}
		ok, err = r.gate.BorrowerExists(ctx, l.BorrowerID)
		if err != nil {
			return Report{}, err
		}
		if !ok {
			report.LoansMissingBorrower = append(report.LoansMissingBorrower, l.ID)
		}
	}

	if r.dangling != nil {
		r.dangling.WithLabelValues(RelationBookAuthor).Set(float64(len(report.BooksMissingAuthor)))
		r.dangling.WithLabelValues(RelationLoanBook).Set(float64(len(report.LoansMissingBook)))
		r.dangling.WithLabelValues(RelationLoanBorrower).Set(float64(len(report.LoansMissingBorrower)))
	}
	if !report.Clean() {
		summary := fmt.Sprintf("reconcile: dangling references book_author=%d loan_book=%d loan_borrower=%d",
			len(report.BooksMissingAuthor), len(report.LoansMissingBook), len(report.LoansMissingBorrower))
		log.Print(summary)
		if r.audit != nil {
			r.audit.Record(summary)
		}
	}
	return report, nil
}
