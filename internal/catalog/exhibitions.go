package catalog

import "github.com/odii/audio-guide/internal/model"

// Default returns the store holding the exhibitions bundled with the app
func Default() *Store {
	return NewStore(defaultExhibitions())
}

func defaultExhibitions() []*model.Exhibition {
	return []*model.Exhibition{
		{
			ID:          "1",
			Title:       "인상주의에서 초기 모더니즘까지, 빛을 수집한 사람들",
			Subtitle:    "2024.01.15 - 2024.03.31",
			Location:    "국립중앙박물관",
			Description: "20세기부터 현재까지의 현대 미술 작품들을 한눈에",
			Artworks: []*model.Artwork{
				{
					ID:              "1-1",
					Title:           "겨울 아침의 몽마르트르 대로",
					Artist:          "카미유 피사로",
					AudioURL:        "asset://audio/겨울 아침의 몽마르트르 대로_카미유 피사로.wav",
					Duration:        "3:24",
					ImageURL:        "asset://image/겨울 아침의 몽마르트르 대로_카미유 피사로.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#2c3e50",
				},
				{
					ID:              "1-2",
					Title:           "그랑드자트섬의 일요일 오후를 의한 습작",
					Artist:          "조르주 쇠라",
					AudioURL:        "https://example.com/audio/1-2.mp3",
					Duration:        "4:12",
					ImageURL:        "asset://image/그랑드자트섬의 일요일 오후를 의한 습작_조르주 쇠라.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#1a5490",
				},
				{
					ID:              "1-3",
					Title:           "꽃피는 과수원",
					Artist:          "빈센트 빈 고흐",
					AudioURL:        "https://example.com/audio/1-3.mp3",
					Duration:        "2:45",
					ImageURL:        "asset://image/꽃피는 과수원_빈센트 빈 고흐.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#8b3a62",
				},
				{
					ID:              "1-4",
					Title:           "목욕하는 타히티 여인들",
					Artist:          "폴 고갱",
					AudioURL:        "https://example.com/audio/1-4.mp3",
					Duration:        "3:15",
					ImageURL:        "asset://image/목욕하는 타히티 여인들_폴 고갱.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#6b4423",
				},
				{
					ID:              "1-5",
					Title:           "밤나무길",
					Artist:          "알프레드 시슬레",
					AudioURL:        "https://example.com/audio/1-5.mp3",
					Duration:        "3:30",
					ImageURL:        "asset://image/밤나무길_알프레드 시슬레.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#2d5016",
				},
				{
					ID:              "1-6",
					Title:           "연못",
					Artist:          "테오도르 루소",
					AudioURL:        "https://example.com/audio/1-6.mp3",
					Duration:        "3:20",
					ImageURL:        "asset://image/연못_테오도르 루소.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#3a5f3a",
				},
				{
					ID:              "1-7",
					Title:           "자 드 부팡 근처의 나무와 집들",
					Artist:          "폴 세잔",
					AudioURL:        "https://example.com/audio/1-7.mp3",
					Duration:        "4:00",
					ImageURL:        "asset://image/자 드 부팡 근처의 나무와 집들_폴 세잔.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#8b4513",
				},
				{
					ID:              "1-8",
					Title:           "클리시 광장",
					Artist:          "폴 시냐크",
					AudioURL:        "https://example.com/audio/1-8.mp3",
					Duration:        "3:45",
					ImageURL:        "asset://image/클리시 광장_폴 시냐크.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#4a6fa5",
				},
				{
					ID:              "1-9",
					Title:           "피아노를 치는 두 소녀",
					Artist:          "오귀스트 르누아르",
					AudioURL:        "https://example.com/audio/1-9.mp3",
					Duration:        "3:50",
					ImageURL:        "asset://image/피아노를 치는 두 소녀_오귀스트 르누아르.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#4a2c2a",
				},
				{
					ID:              "1-10",
					Title:           "해변의 사람들",
					Artist:          "오귀스트 르누아르",
					AudioURL:        "https://example.com/audio/1-10.mp3",
					Duration:        "3:10",
					ImageURL:        "asset://image/해변의 사람들_오귀스트 르누아르.jpg",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#5a8a6b",
				},
				{
					ID:              "1-11",
					Title:           "햇빛이 비치는 수면",
					Artist:          "모리스 드 블라맹크",
					AudioURL:        "https://example.com/audio/1-11.mp3",
					Duration:        "3:35",
					ImageURL:        "asset://image/햇빛이 비치는 수면_모리스 드 블라맹크.png",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#2c4a6b",
				},
			},
		},
		{
			ID:          "2",
			Title:       "인상주의의 빛",
			Subtitle:    "2024.02.01 - 2024.04.30",
			Location:    "서울시립미술관",
			Description: "모네, 르누아르 등 인상주의 거장들의 작품 전시",
			Artworks: []*model.Artwork{
				{
					ID:              "2-1",
					Title:           "작품 1",
					Artist:          "작가명",
					AudioURL:        "https://example.com/audio/2-1.mp3",
					Duration:        "3:24",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#2d5016",
				},
				{
					ID:              "2-2",
					Title:           "작품 2",
					Artist:          "작가명",
					AudioURL:        "https://example.com/audio/2-2.mp3",
					Duration:        "4:12",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#2d5016",
				},
			},
		},
		{
			ID:          "3",
			Title:       "한국 현대 조각",
			Subtitle:    "2024.02.10 - 2024.05.15",
			Location:    "예술의전당",
			Description: "한국 현대 조각가들의 작품을 만나보세요",
			Artworks: []*model.Artwork{
				{
					ID:              "3-1",
					Title:           "작품 1",
					Artist:          "작가명",
					AudioURL:        "https://example.com/audio/3-1.mp3",
					Duration:        "3:24",
					DisplayMode:     model.DisplayModeFullscreen,
					BackgroundColor: "#8b4513",
				},
			},
		},
	}
}
