package minigame

// LevelMeta is the static presentation metadata for a story level.
type LevelMeta struct {
	LevelID  int          `json:"level_id"`
	Title    string       `json:"title"`
	Scene    string       `json:"scene"`
	Mechanic MechanicType `json:"mechanic"`
}

// LevelCount is the number of story levels shipped with the game.
const LevelCount = 30

var levelMetaByID = map[int]LevelMeta{
	1:  {1, "Passport Panic", "airport_arrival", MechanicSortMatch},
	2:  {2, "TukTuk Run: Monitor Lizard Escape", "tuktuk_run", MechanicRunner},
	3:  {3, "Spice Survivor", "street_food_stall", MechanicCraftSequence},
	4:  {4, "Seven Shift", "seven_counter", MechanicDialogueTiles},
	5:  {5, "Lobby Logic", "hotel_lobby", MechanicDialogueTiles},
	6:  {6, "Sweetness Chaos", "coffee_shop", MechanicCraftSequence},
	7:  {7, "WiFi Wars", "cowork_wifi", MechanicRhythm},
	8:  {8, "Try & Buy", "weekend_market", MechanicSortMatch},
	9:  {9, "Pressure Balance", "yoga_studio", MechanicRhythm},
	10: {10, "Bill Breaker", "rooftop_bar", MechanicRhythm},
	11: {11, "Wash Quest", "laundry_shop", MechanicSortMatch},
	12: {12, "Symptom Match", "pharmacy", MechanicSortMatch},
	13: {13, "Style Matcher", "hair_salon", MechanicDialogueTiles},
	14: {14, "Fitness Flow", "gym_floor", MechanicRhythm},
	15: {15, "Form Frenzy", "bank_forms", MechanicCraftSequence},
	16: {16, "Answer Confidence", "job_interview", MechanicDialogueTiles},
	17: {17, "Proposal Stack", "meeting_room", MechanicCraftSequence},
	18: {18, "Table Manners", "client_dinner", MechanicDialogueTiles},
	19: {19, "Signal Panic", "phone_call", MechanicRhythm},
	20: {20, "Inbox Attack", "email_messages", MechanicRunner},
	21: {21, "Platform Puzzle", "train_station", MechanicSortMatch},
	22: {22, "Safety Surf", "beach_resort", MechanicRunner},
	23: {23, "Ranger Sort", "national_park", MechanicSortMatch},
	24: {24, "Bargain Battle", "night_market", MechanicDialogueTiles},
	25: {25, "Reef Explorer", "island_hopping", MechanicRunner},
	26: {26, "Merit Flow", "temple_visit", MechanicDialogueTiles},
	27: {27, "Wok Master", "thai_cooking_class", MechanicCraftSequence},
	28: {28, "Muay Combo", "muay_thai_gym", MechanicRhythm},
	29: {29, "Festival Flow", "local_festival", MechanicRhythm},
	30: {30, "Social Links", "making_thai_friends", MechanicDialogueTiles},
}

// LookupLevelMeta returns the metadata for a level id.
func LookupLevelMeta(levelID int) (LevelMeta, bool) {
	meta, ok := levelMetaByID[levelID]
	return meta, ok
}

// AllLevelMeta returns metadata for every level in ascending order.
func AllLevelMeta() []LevelMeta {
	out := make([]LevelMeta, 0, LevelCount)
	for id := 1; id <= LevelCount; id++ {
		if meta, ok := levelMetaByID[id]; ok {
			out = append(out, meta)
		}
	}
	return out
}
