package api

import "github.com/odii/audio-guide/internal/model"

// DefaultListings returns the listings served when no listings file is set
func DefaultListings() []model.Listing {
	return []model.Listing{
		{
			ID:          "light-epic",
			Title:       "빛의 서사",
			Venue:       "MMCA 서울",
			Period:      "2024.11 ~ 2025.02",
			Tags:        []string{"Immersive", "Soundscape"},
			Tracks:      24,
			Status:      model.ListingStatusLive,
			Description: "빛과 어둠이 교차하는 다감각 설치전",
		},
		{
			ID:          "city-breath",
			Title:       "도시의 숨",
			Venue:       "롯데뮤지엄",
			Period:      "2024.12 ~ 2025.03",
			Tags:        []string{"Ambient", "Field"},
			Tracks:      18,
			Status:      model.ListingStatusUpcoming,
			Description: "아티스트들의 초고해상도 도시 앰비언트",
		},
		{
			ID:          "sound-pavilion",
			Title:       "사운드 파빌리온",
			Venue:       "리움MI",
			Period:      "2025.01 ~ 2025.05",
			Tags:        []string{"Architectural", "Live"},
			Tracks:      32,
			Status:      model.ListingStatusUpcoming,
			Description: "공간이 악기가 되는 사운드 아키텍처",
		},
	}
}
