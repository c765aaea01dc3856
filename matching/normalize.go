package matching

// Display-name mappings for the enumerated profile codes. The product surface
// is Korean, so the embedding text uses the Korean display names while the
// canonical codes stay on the stored record for scoring. Unknown codes pass
// through unchanged so new vocabulary entries degrade gracefully.

var genderDisplay = map[string]string{
	"MALE":   "남자",
	"FEMALE": "여자",
}

var ageGroupDisplay = map[string]string{
	"AGE_10S": "10대",
	"AGE_20S": "20대",
	"AGE_30S": "30대",
	"AGE_40S": "40대",
	"AGE_50S": "50대",
	"AGE_60S": "60대",
}

var religionDisplay = map[string]string{
	"NON_RELIGIOUS": "무교",
	"CHRISTIANITY":  "기독교",
	"CATHOLICISM":   "천주교",
	"BUDDHISM":      "불교",
	"WON_BUDDHISM":  "원불교",
	"OTHER":         "기타",
}

var smokingDisplay = map[string]string{
	"NO_SMOKING": "비흡연",
	"SOMETIMES":  "가끔",
	"EVERYDAY":   "매일",
	"E_CIGAR":    "전자담배",
}

var drinkingDisplay = map[string]string{
	"NEVER":     "전혀 안 함",
	"QUIT":      "금주",
	"SOMETIMES": "가끔",
	"OFTEN":     "자주",
}

// tagDisplay covers the tag vocabularies (personality, preferred traits,
// interests, foods, sports, pets, self-development, hobbies).
var tagDisplay = map[string]string{
	// personality / preferred traits
	"CUTE":         "아담한",
	"RELIABLE":     "듬직한",
	"KIND":         "친절한",
	"INTROVERTED":  "내향적인",
	"EXTROVERTED":  "외향적인",
	"NICE_VOICE":   "목소리가 좋은",
	"DOESNT_SWEAR": "욕을 안 하는",
	"PASSIONATE":   "열정적인",
	"WITTY":        "재치있는",
	"CALM":         "차분한",
	"HONEST":       "솔직한",

	// interests / self-development
	"BAKING":          "베이킹",
	"DRAWING":         "그림",
	"PLANT_PARENTING": "반려식물",
	"READING":         "독서",
	"STUDYING":        "공부",
	"CAFE_STUDY":      "카공",
	"INVESTING":       "재테크",
	"LANGUAGE_STUDY":  "어학",

	// foods
	"FRUIT":       "과일",
	"WESTERN":     "양식",
	"STREET_FOOD": "길거리 음식",
	"KOREAN":      "한식",
	"JAPANESE":    "일식",
	"CHINESE":     "중식",
	"DESSERT":     "디저트",

	// sports
	"BOWLING":   "볼링",
	"BILLIARDS": "당구",
	"YOGA":      "요가",
	"TENNIS":    "테니스",
	"RUNNING":   "러닝",
	"CLIMBING":  "클라이밍",
	"SWIMMING":  "수영",
	"HIKING":    "등산",

	// pets
	"DOG":     "강아지",
	"CAT":     "고양이",
	"FISH":    "물고기",
	"HAMSTER": "햄스터",
	"RABBIT":  "토끼",
	"BIRD":    "새",
	"NONE":    "없음",

	// hobbies
	"GAMING":      "게임",
	"MUSIC":       "음악",
	"MOVIES":      "영화",
	"PHOTOGRAPHY": "사진",
	"TRAVEL":      "여행",
	"COOKING":     "요리",
	"DANCING":     "춤",
}

var scalarDisplay = map[string]map[string]string{
	"gender":   genderDisplay,
	"ageGroup": ageGroupDisplay,
	"religion": religionDisplay,
	"smoking":  smokingDisplay,
	"drinking": drinkingDisplay,
}

// DisplayValue maps a single enum code of the given field to its display
// name. Codes without a mapping are returned as-is.
func DisplayValue(field, code string) string {
	if m, ok := scalarDisplay[field]; ok {
		if display, ok := m[code]; ok {
			return display
		}
		return code
	}
	switch field {
	case "emailDomain", "MBTI":
		// identity fields, never translated
		return code
	}
	if display, ok := tagDisplay[code]; ok {
		return display
	}
	return code
}

// DisplayValues maps every code of a field to its display name.
func DisplayValues(field string, codes []string) []string {
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = DisplayValue(field, code)
	}
	return out
}
