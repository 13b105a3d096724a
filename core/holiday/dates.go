package holiday

// Gazetted public holidays, including observed in-lieu days. Regenerated
// yearly from the MOM and JPM gazettes.

var sgPublicHolidays = []string{
	// 2024
	"2024-01-01",
	"2024-02-10", "2024-02-11", "2024-02-12",
	"2024-03-29",
	"2024-04-10",
	"2024-05-01",
	"2024-05-22",
	"2024-06-17",
	"2024-08-09",
	"2024-10-31",
	"2024-12-25",
	// 2025
	"2025-01-01",
	"2025-01-29", "2025-01-30",
	"2025-03-31",
	"2025-04-18",
	"2025-05-01",
	"2025-05-12",
	"2025-06-07",
	"2025-08-09",
	"2025-10-20",
	"2025-12-25",
	// 2026
	"2026-01-01",
	"2026-02-17", "2026-02-18",
	"2026-03-21",
	"2026-04-03",
	"2026-05-01",
	"2026-05-31", "2026-06-01",
	"2026-06-27",
	"2026-08-09", "2026-08-10",
	"2026-11-08", "2026-11-09",
	"2026-12-25",
}

var myPublicHolidays = []string{
	// 2024
	"2024-01-01",
	"2024-02-10", "2024-02-11", "2024-02-12",
	"2024-04-10", "2024-04-11",
	"2024-05-01",
	"2024-05-22",
	"2024-06-03",
	"2024-06-17",
	"2024-07-07", "2024-07-08",
	"2024-08-31",
	"2024-09-16",
	"2024-10-31",
	"2024-12-25",
	// 2025
	"2025-01-01",
	"2025-01-29", "2025-01-30",
	"2025-03-31", "2025-04-01",
	"2025-05-01",
	"2025-05-12",
	"2025-06-02",
	"2025-06-07",
	"2025-06-27",
	"2025-08-31", "2025-09-01",
	"2025-09-05",
	"2025-09-16",
	"2025-10-20",
	"2025-12-25",
	// 2026
	"2026-01-01",
	"2026-02-17", "2026-02-18",
	"2026-03-21", "2026-03-22", "2026-03-23",
	"2026-05-01",
	"2026-05-27",
	"2026-05-31", "2026-06-01",
	"2026-06-06",
	"2026-06-17",
	"2026-08-25",
	"2026-08-31",
	"2026-09-16",
	"2026-11-08", "2026-11-09",
	"2026-12-25",
}
