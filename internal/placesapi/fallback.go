package placesapi

// fallbackPool keeps the validator querying when the place pool service is
// down. Entries are stable, high-review-volume places so miners always have
// something to answer.
var fallbackPool = []Place{
	{PlaceID: "ChIJN1t_tDeuEmsRUsoyG83frY4", Name: "Sydney Opera House", Category: "tourist_attraction", Locale: "en-AU"},
	{PlaceID: "ChIJLU7jZClu5kcR4PcOOO6p3I0", Name: "Eiffel Tower", Category: "tourist_attraction", Locale: "fr-FR"},
	{PlaceID: "ChIJPTacEpBQwokRKwIlDXelxkA", Name: "Statue of Liberty", Category: "tourist_attraction", Locale: "en-US"},
	{PlaceID: "ChIJ51cu8IcbXWARiRtXIothAS4", Name: "Tokyo Tower", Category: "tourist_attraction", Locale: "ja-JP"},
	{PlaceID: "ChIJB1M9Pr1ZwokR7bPLQ1ZCTXs", Name: "Katz's Delicatessen", Category: "restaurant", Locale: "en-US"},
	{PlaceID: "ChIJoRyG2ZurNTERqRfKcnt_iOc", Name: "Marina Bay Sands", Category: "hotel", Locale: "en-SG"},
	{PlaceID: "ChIJmzrzi9Y0K4gRgXUc3sTY7RU", Name: "CN Tower", Category: "tourist_attraction", Locale: "en-CA"},
	{PlaceID: "ChIJ2WrMN9MDdkgRuWzZOQnfsbc", Name: "Borough Market", Category: "market", Locale: "en-GB"},
	{PlaceID: "ChIJ_zNzWmlu5kcRP1A7K9CKiSw", Name: "Musee du Louvre", Category: "museum", Locale: "fr-FR"},
	{PlaceID: "ChIJAQquYc3lfDURsbBLNtIdCC0", Name: "Gyeongbokgung Palace", Category: "tourist_attraction", Locale: "ko-KR"},
	{PlaceID: "ChIJw____96GhYARCVVwg5cT7c0", Name: "Golden Gate Bridge", Category: "tourist_attraction", Locale: "en-US"},
	{PlaceID: "ChIJb8Jg9pZYwokR-qHGtvSkLzs", Name: "Empire State Building", Category: "tourist_attraction", Locale: "en-US"},
}
