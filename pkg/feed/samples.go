package feed

import (
	"time"

	"github.com/newsbyte/newsbyte/pkg/domain"
)

// sample content shown when no real sources are configured or reachable,
// the mobile client shipped with the same kind of canned stories
var samples = map[domain.Category][]domain.Article{
	domain.CategoryGeneral: {
		{
			URL:         "https://newsbyte.app/samples/general-1",
			Title:       "City Council Approves New Public Transit Plan",
			Description: "The long-debated expansion of the metro network was approved in a late-night session, with construction expected to start next spring.",
			Content:     "After months of public hearings the city council voted to approve the transit expansion plan. The first new line is expected to open within three years and will connect the northern districts with the city center.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			URL:         "https://newsbyte.app/samples/general-2",
			Title:       "Record Turnout at Annual Spring Festival",
			Description: "Organizers estimate over 120,000 visitors attended this year's festival, the highest number since the event started.",
			Content:     "Sunny weather and an expanded program drew record crowds to the annual spring festival over the weekend.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 9, 15, 30, 0, 0, time.UTC),
		},
	},
	domain.CategoryEntertainment: {
		{
			URL:         "https://newsbyte.app/samples/entertainment-1",
			Title:       "Indie Film Sweeps Festival Awards",
			Description: "A low-budget drama took home four awards including best picture, surprising critics and audiences alike.",
			Content:     "The festival jury praised the film's script and performances. Distribution rights were picked up within hours of the ceremony.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 8, 20, 0, 0, 0, time.UTC),
		},
	},
	domain.CategorySports: {
		{
			URL:         "https://newsbyte.app/samples/sports-1",
			Title:       "Underdogs Reach Cup Final After Penalty Shootout",
			Description: "A dramatic semifinal ended 4-3 on penalties, sending the second-division side to their first cup final in club history.",
			Content:     "The goalkeeper saved two penalties in the shootout to complete a remarkable cup run that has already eliminated three top-flight teams.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 9, 22, 15, 0, 0, time.UTC),
		},
	},
	domain.CategoryPolitics: {
		{
			URL:         "https://newsbyte.app/samples/politics-1",
			Title:       "Parliament Debates Digital Services Bill",
			Description: "Lawmakers began a second reading of the bill that would tighten rules for online platforms operating in the country.",
			Content:     "The bill introduces new transparency requirements for recommendation systems and stricter takedown deadlines. A final vote is expected next month.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 10, 11, 45, 0, 0, time.UTC),
		},
	},
	domain.CategoryScience: {
		{
			URL:         "https://newsbyte.app/samples/science-1",
			Title:       "Researchers Map Seafloor of Remote Arctic Trench",
			Description: "A six-week expedition produced the first high-resolution map of the trench, revealing several previously unknown thermal vents.",
			Content:     "The survey vessel used autonomous underwater vehicles to chart the trench at depths beyond 4,000 meters. Samples collected near the vents are now being analyzed.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC),
		},
	},
	domain.CategoryTechnology: {
		{
			URL:         "https://newsbyte.app/samples/technology-1",
			Title:       "Open-Source Database Project Hits 1.0 Release",
			Description: "After four years of development the project shipped its first stable release, promising compatibility guarantees going forward.",
			Content:     "The 1.0 release adds online schema migration and a stabilized replication protocol. Maintainers say the API is now frozen for the 1.x series.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC),
		},
		{
			URL:         "https://newsbyte.app/samples/technology-2",
			Title:       "Chipmaker Announces Low-Power Edge AI Module",
			Description: "The module targets battery-powered devices and is claimed to run small language models entirely on-device.",
			Content:     "The company says the module draws under two watts at full load and will ship to board partners in the fall.",
			Source:      "Newsbyte Samples",
			Published:   time.Date(2025, 3, 9, 13, 0, 0, 0, time.UTC),
		},
	},
}

// sampleArticles returns a copy of the canned articles for a category
func sampleArticles(category domain.Category) []domain.Article {
	articles := make([]domain.Article, len(samples[category]))
	for i, a := range samples[category] {
		a.Category = category
		articles[i] = a
	}
	return articles
}
