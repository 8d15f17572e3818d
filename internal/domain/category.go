package domain

import "strings"

type CategoryInfo struct {
	Key         string `json:"key"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var knownCategories = map[string]CategoryInfo{
	"streaming": {
		Key:         "streaming",
		Icon:        "📺",
		Title:       "Streaming",
		Description: "Movies, TV shows, and entertainment",
		Color:       "from-purple-600 to-pink-600",
	},
	"music": {
		Key:         "music",
		Icon:        "🎵",
		Title:       "Music",
		Description: "Music streaming and audio services",
		Color:       "from-green-600 to-blue-600",
	},
	"productivity": {
		Key:         "productivity",
		Icon:        "💼",
		Title:       "Productivity",
		Description: "Tools to boost your efficiency",
		Color:       "from-blue-600 to-indigo-600",
	},
	"gaming": {
		Key:         "gaming",
		Icon:        "🎮",
		Title:       "Gaming",
		Description: "Gaming subscriptions and services",
		Color:       "from-red-600 to-orange-600",
	},
	"education": {
		Key:         "education",
		Icon:        "📚",
		Title:       "Education",
		Description: "Learning platforms and resources",
		Color:       "from-yellow-600 to-red-600",
	},
	"entertainment": {
		Key:         "entertainment",
		Icon:        "🎪",
		Title:       "Entertainment",
		Description: "Fun and leisure activities",
		Color:       "from-pink-600 to-purple-600",
	},
}

// CategoryInfoFor returns the display data for a category. Unknown categories
// get the generic fallback titled with the category name itself.
func CategoryInfoFor(category string) CategoryInfo {
	key := strings.ToLower(strings.TrimSpace(category))
	if info, ok := knownCategories[key]; ok {
		return info
	}
	return CategoryInfo{
		Key:         key,
		Icon:        "📦",
		Title:       category,
		Description: "Explore this category",
		Color:       "from-gray-600 to-gray-700",
	}
}
