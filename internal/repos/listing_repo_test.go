package repos_test

import (
	"testing"

	"twostreet/internal/domain"
	"twostreet/internal/repos"
)

func TestCreateListingDefaults(t *testing.T) {
	listings := repos.NewListingRepo(tempStore(t))

	l, err := listings.Create(domain.Listing{
		UserID: 2, Title: "Bike", Description: "Campus bike", Price: 120,
		Category: "Others", Condition: "Fair", Images: "bike.jpg",
		Status: "", Clicks: 42, // both ignored on create
	})
	if err != nil {
		t.Fatal(err)
	}
	if l.Status != domain.ListingActive || l.Clicks != 0 {
		t.Fatalf("create defaults wrong: %+v", l)
	}
	if l.CreatedAt == "" {
		t.Fatal("created_at not assigned")
	}

	// New listings sit at the head of the collection.
	if all := listings.All(); all[0].ID != l.ID {
		t.Fatalf("new listing not first, got id %d", all[0].ID)
	}
}

func TestUpdateListingRetainsPriceWhenAbsent(t *testing.T) {
	listings := repos.NewListingRepo(tempStore(t))

	title := "Renamed"
	updated, err := listings.Update(1, repos.ListingUpdate{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if updated == nil || updated.Title != "Renamed" {
		t.Fatalf("title not merged: %+v", updated)
	}
	if updated.Price != 3200 {
		t.Fatalf("price must be retained, got %v", updated.Price)
	}

	price := 2999.0
	updated, err = listings.Update(1, repos.ListingUpdate{Price: &price})
	if err != nil || updated.Price != 2999 {
		t.Fatalf("price not merged: %+v %v", updated, err)
	}
}

func TestDeleteListingReportsRemoval(t *testing.T) {
	listings := repos.NewListingRepo(tempStore(t))

	removed, err := listings.Delete(1)
	if err != nil || !removed {
		t.Fatalf("want removal, got removed=%v err=%v", removed, err)
	}
	removed, err = listings.Delete(1)
	if err != nil || removed {
		t.Fatalf("second delete must be a no-op, got removed=%v err=%v", removed, err)
	}
}

func TestIncrementClicksPersistsPerView(t *testing.T) {
	listings := repos.NewListingRepo(tempStore(t))

	before := listings.ByID(2)
	if before == nil {
		t.Fatal("seed listing missing")
	}
	updated, err := listings.IncrementClicks(2)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Clicks != before.Clicks+1 {
		t.Fatalf("want %d clicks, got %d", before.Clicks+1, updated.Clicks)
	}

	missing, err := listings.IncrementClicks(999)
	if err != nil || missing != nil {
		t.Fatalf("missing row must be (nil, nil), got %+v %v", missing, err)
	}
}

func TestMarkStatus(t *testing.T) {
	listings := repos.NewListingRepo(tempStore(t))

	updated, err := listings.MarkStatus(3, domain.ListingSold)
	if err != nil || updated == nil || updated.Status != domain.ListingSold {
		t.Fatalf("mark sold failed: %+v %v", updated, err)
	}
}

func TestCreateReportForcesPending(t *testing.T) {
	s := tempStore(t)
	reports := repos.NewReportRepo(s)

	rep, err := reports.Create(domain.Report{
		ListingID: 1, ReporterID: 2, Reason: "  spam  ", Status: domain.ReportResolved,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Status != domain.ReportPending {
		t.Fatalf("status must be forced to pending, got %q", rep.Status)
	}
	if rep.Reason != "spam" {
		t.Fatalf("reason not trimmed: %q", rep.Reason)
	}

	updated, err := reports.UpdateStatus(rep.ID, domain.ReportDismissed)
	if err != nil || updated == nil || updated.Status != domain.ReportDismissed {
		t.Fatalf("status update failed: %+v %v", updated, err)
	}
}

func TestStatsTotals(t *testing.T) {
	s := tempStore(t)
	listings := repos.NewListingRepo(s)
	stats := repos.NewStatsRepo(s)

	if _, err := listings.MarkStatus(1, domain.ListingSold); err != nil {
		t.Fatal(err)
	}

	st := stats.Totals()
	if st.TotalUsers != 2 || st.TotalListings != 7 {
		t.Fatalf("totals wrong: %+v", st)
	}
	if st.ActiveListings != 6 || st.SoldListings != 1 {
		t.Fatalf("status counts wrong: %+v", st)
	}
}
