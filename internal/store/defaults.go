package store

import (
	"golang.org/x/crypto/bcrypt"

	"twostreet/internal/domain"
)

// buildDefaults synthesizes the seed dataset written when no usable snapshot
// exists: one admin, one student, and a starter catalog.
func buildDefaults() Dataset {
	createdAt := Now()

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 10)
		return string(h)
	}

	users := []domain.User{
		{
			ID:           1,
			Name:         "Admin",
			Email:        "admin@2street.usm.my",
			Password:     hash("admin123"),
			Phone:        "0123456789",
			MatricNumber: "ADMIN001",
			Role:         domain.RoleAdmin,
			Status:       domain.StatusActive,
			CreatedAt:    createdAt,
		},
		{
			ID:           2,
			Name:         "Student User",
			Email:        "student@2street.usm.my",
			Password:     hash("user123"),
			Phone:        "0198765432",
			MatricNumber: "STU001",
			Role:         domain.RoleUser,
			Status:       domain.StatusActive,
			CreatedAt:    createdAt,
		},
	}

	mk := func(id int, title, desc string, price float64, category, condition, location, image string, clicks int) domain.Listing {
		return domain.Listing{
			ID: id, UserID: 2, Title: title, Description: desc, Price: price,
			Category: category, Condition: condition, Location: location,
			Images: image, Status: domain.ListingActive, Clicks: clicks, CreatedAt: createdAt,
		}
	}

	listings := []domain.Listing{
		mk(1, `MacBook Pro 13" M1 (256GB)`,
			"Reliable laptop for class, assignments, and light video editing. Includes original charger and sleeve.",
			3200, "Electronics", "Like New", "Aman Damai Hostel",
			"https://images.unsplash.com/photo-1517336714731-489689fd1ca8?auto=format&fit=crop&w=900&q=80", 12),
		mk(2, "Math Textbook Bundle",
			"Bundle of calculus and statistics books from last semester. Minimal highlighting, perfect for Year 2.",
			90, "Books", "Like New", "Desasiswa Tekun",
			"https://images.unsplash.com/photo-1529148482759-b35b25c5c27e?auto=format&fit=crop&w=900&q=80", 5),
		mk(3, "IKEA Study Table with Drawer",
			"Sturdy study desk with a smooth laminate surface and built-in drawer. Fits perfectly in hostel rooms.",
			150, "Furniture", "Good", "Ria Hostel",
			"https://images.unsplash.com/photo-1505691938895-1758d7feb511?auto=format&fit=crop&w=900&q=80", 4),
		mk(4, "Samsung Galaxy S21 Ultra",
			"128GB storage, battery in excellent condition. Includes Spigen case and screen protector.",
			2100, "Electronics", "Like New", "Aman Damai Hostel",
			"https://images.unsplash.com/photo-1616594039964-192109c6f584?auto=format&fit=crop&w=900&q=80", 7),
		mk(5, "Mini Refrigerator - Sharp",
			"Energy-efficient mini fridge. Great for keeping drinks and snacks cold in the dorm.",
			260, "Appliances", "Good", "Ria Hostel",
			"https://images.unsplash.com/photo-1507086182422-97bd7ca241ef?auto=format&fit=crop&w=900&q=80", 2),
		mk(6, "Chemistry Lab Coat (Size M)",
			"USM lab coat used for one semester only. Clean, no stains, comes with name tag slot.",
			35, "Others", "Good", "Cahaya Gemilang Hostel",
			"https://images.unsplash.com/photo-1505751172876-fa1923c5c528?auto=format&fit=crop&w=900&q=80", 6),
		mk(7, "AirPods Pro 2nd Generation",
			"Comes with MagSafe charging case, extra ear tips, and original box. ANC works perfectly.",
			700, "Electronics", "Like New", "Aman Damai Hostel",
			"https://images.unsplash.com/photo-1596357394214-9ef9da58fff4?auto=format&fit=crop&w=900&q=80", 8),
	}

	return Dataset{Users: users, Listings: listings, Reports: []domain.Report{}}
}
