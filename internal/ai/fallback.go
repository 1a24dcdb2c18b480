package ai

import (
	"strings"
	"unicode"
)

// Intent coarse classification of a user message
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentCharDham Intent = "char_dham"
	IntentWeather  Intent = "weather"
	IntentTravel   Intent = "travel"
	IntentDefault  Intent = "default"
)

// Languages with authored fallback text
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

type keyword struct {
	text      string
	wholeWord bool // short tokens that would otherwise hit inside "this" or "Delhi"
}

type intentRule struct {
	intent   Intent
	keywords []keyword
}

func kw(texts ...string) []keyword {
	out := make([]keyword, len(texts))
	for i, t := range texts {
		out[i] = keyword{text: t}
	}
	return out
}

// intentRules checked in order, first hit wins
var intentRules = []intentRule{
	{IntentGreeting, append(kw("hello", "namaste", "नमस्ते"), keyword{text: "hi", wholeWord: true})},
	{IntentCharDham, kw("char dham", "kedarnath", "badrinath", "चार धाम")},
	{IntentWeather, kw("weather", "temperature", "मौसम")},
	{IntentTravel, kw("travel", "route", "यात्रा")},
}

var fallbackResponses = map[string]map[Intent]string{
	LanguageEnglish: {
		IntentGreeting: "Hello! I'm Deep-Shiva, your Uttarakhand tourism guide. I'm currently experiencing technical difficulties, but I'm here to help with basic information about the Char Dham yatra and Uttarakhand tourism.",
		IntentCharDham: "The Char Dham includes Kedarnath, Badrinath, Gangotri, and Yamunotri. These sacred sites are typically open from May to October. Would you like specific information about any of these shrines?",
		IntentWeather:  "Weather in Uttarakhand varies by altitude and season. The best time for pilgrimage is May-June and September-October. Always check current conditions before traveling.",
		IntentTravel:   "Travel to Char Dham involves road journeys from Rishikesh/Haridwar. Kedarnath requires a 16km trek from Gaurikund. Helicopter services are available during peak season.",
		IntentDefault:  "I apologize, but I'm currently experiencing technical difficulties. For immediate assistance with Uttarakhand tourism, please contact local tourism offices or check official government tourism websites.",
	},
	LanguageHindi: {
		IntentGreeting: "नमस्ते! मैं दीप-शिव हूं, आपका उत्तराखंड पर्यटन गाइड। मुझे तकनीकी समस्या हो रही है, लेकिन मैं चार धाम यात्रा की बुनियादी जानकारी में आपकी मदद कर सकता हूं।",
		IntentCharDham: "चार धाम में केदारनाथ, बद्रीनाथ, गंगोत्री और यमुनोत्री शामिल हैं। ये पवित्र स्थान आमतौर पर मई से अक्टूबर तक खुले रहते हैं।",
		IntentWeather:  "उत्तराखंड में मौसम ऊंचाई और मौसम के अनुसार बदलता रहता है। तीर्थयात्रा के लिए सबसे अच्छा समय मई-जून और सितंबर-अक्टूबर है।",
		IntentTravel:   "चार धाम की यात्रा ऋषिकेश/हरिद्वार से सड़क मार्ग से होती है। केदारनाथ के लिए गौरीकुंड से 16 किमी की पैदल यात्रा करनी पड़ती है।",
		IntentDefault:  "मुझे खेद है, लेकिन मुझे तकनीकी समस्या हो रही है। उत्तराखंड पर्यटन की तत्काल सहायता के लिए स्थानीय पर्यटन कार्यालयों से संपर्क करें।",
	},
}

// ClassifyIntent substring match on the lowercased message, so inflections
// such as "routes" or "traveling" still hit. Keywords flagged wholeWord
// must stand alone.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	words := normalizeWords(message)
	for _, rule := range intentRules {
		for _, k := range rule.keywords {
			if k.wholeWord {
				if strings.Contains(words, " "+k.text+" ") {
					return rule.intent
				}
				continue
			}
			if strings.Contains(lower, k.text) {
				return rule.intent
			}
		}
	}
	return IntentDefault
}

// FallbackResponse deterministic reply for message in language; languages
// without a table use English.
func FallbackResponse(message, language string) string {
	table, ok := fallbackResponses[language]
	if !ok {
		table = fallbackResponses[LanguageEnglish]
	}
	return table[ClassifyIntent(message)]
}

// normalizeWords lowercases s and rewrites it as " w1 w2 ... " for whole
// word lookups.
func normalizeWords(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(words, " ") + " "
}
