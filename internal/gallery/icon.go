package gallery

import "strings"

// DefaultIcon значок, если ни одно слово не подошло
const DefaultIcon = "✨"

// порядок важен: выигрывает первое совпадение
var iconRules = []struct {
	words []string
	icon  string
}{
	{[]string{"fly", "flight", "plane"}, "✈️"},
	{[]string{"space", "rocket", "orbit"}, "🚀"},
	{[]string{"music", "sound", "audio", "song"}, "🎵"},
	{[]string{"draw", "paint", "art", "sketch"}, "🎨"},
	{[]string{"game", "play"}, "🎮"},
	{[]string{"physics", "science", "experiment"}, "🧪"},
	{[]string{"photo", "camera", "picture"}, "📷"},
	{[]string{"fast", "speed", "quick", "zap"}, "⚡"},
	{[]string{"world", "globe", "map", "earth"}, "🌍"},
	{[]string{"tool", "build", "make", "create"}, "🔧"},
	{[]string{"idea", "brain", "think", "light"}, "💡"},
	{[]string{"target", "aim", "goal"}, "🎯"},
	{[]string{"time", "clock", "timer"}, "⏰"},
	{[]string{"love", "heart", "like"}, "❤️"},
	{[]string{"win", "trophy", "champion", "prize"}, "🏆"},
	{[]string{"read", "book", "story", "text"}, "📖"},
	{[]string{"relax", "chill", "coffee", "calm"}, "☕"},
	{[]string{"animal", "pet", "creature"}, "🐾"},
	{[]string{"food", "eat", "cook"}, "🍕"},
	{[]string{"robot", "ai", "bot"}, "🤖"},
	{[]string{"alien", "ufo"}, "👽"},
	{[]string{"dinosaur", "dino"}, "🦕"},
	{[]string{"fire", "flame"}, "🔥"},
	{[]string{"water", "ocean", "sea"}, "🌊"},
	{[]string{"star", "sky"}, "⭐"},
	{[]string{"color", "rainbow"}, "🌈"},
}

// Icon подбирает значок по словам в описании, регистр не важен
func Icon(description string) string {
	lower := strings.ToLower(description)
	for _, r := range iconRules {
		for _, w := range r.words {
			if strings.Contains(lower, w) {
				return r.icon
			}
		}
	}
	return DefaultIcon
}
