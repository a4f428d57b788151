package domain

// Advisory bundles the Bengali guidance text attached to an assessment.
type Advisory struct {
	Advice          string   `json:"advice"`
	Recommendations []string `json:"recommendations"`
	Warnings        []string `json:"warnings"`
}

// BuildAdvisory derives tier advice plus agricultural recommendations and
// warnings from the assessment and the weather that produced it.
func BuildAdvisory(a RiskAssessment, weather WeatherReading) Advisory {
	return Advisory{
		Advice:          tierAdvice(a.Tier),
		Recommendations: recommendations(a.Tier, weather.Rain3DayMM),
		Warnings:        warnings(a.Tier, weather.Rain3DayMM),
	}
}

func tierAdvice(t Tier) string {
	switch t {
	case TierLow:
		return "বর্তমান অবস্থা ভালো আছে। স্বাভাবিক জীবনযাপন করুন।"
	case TierMedium:
		return "সতর্কতা অবলম্বন করুন। বৃষ্টিপাত পর্যবেক্ষণ করুন।"
	case TierHigh:
		return "জরুরি সতর্কতা! বন্যার আশঙ্কা রয়েছে। নিরাপদ স্থানে চলে যান।"
	case TierVeryHigh:
		return "চরম বিপদ! অবিলম্বে নিরাপদ আশ্রয়ে যান এবং স্থানীয় কর্তৃপক্ষের নির্দেশনা মেনে চলুন।"
	default:
		return "ডেটা প্রক্রিয়াকরণে সমস্যা হয়েছে।"
	}
}

func recommendations(t Tier, rain3 float64) []string {
	var recs []string

	if t >= TierHigh {
		recs = append(recs,
			"ফসল দ্রুত উঠিয়ে ফেলুন",
			"গবাদি পশু নিরাপদ স্থানে নিয়ে যান",
			"জরুরি যোগাযোগ নম্বর হাতে রাখুন",
			"নিকটস্থ নিরাপদ আশ্রয়ের পথ চিনে রাখুন",
		)
	}
	if rain3 > 60 {
		recs = append(recs,
			"জমিতে জল নিষ্কাশন ব্যবস্থা পরীক্ষা করুন",
			"বাড়ির চারপাশের ড্রেন পরিষ্কার করুন",
		)
	}
	if rain3 > 100 {
		recs = append(recs,
			"বাহিরের কাজ বন্ধ রাখুন",
			"বৈদ্যুতিক সরঞ্জাম উঁচু স্থানে রাখুন",
		)
	}
	if len(recs) == 0 {
		recs = append(recs,
			"স্বাভাবিক কৃষিকাজ চালিয়ে যান",
			"আবহাওয়ার পূর্বাভাস নিয়মিত দেখুন",
			"জরুরি প্রস্তুতি পরিকল্পনা তৈরি করুন",
		)
	}

	if len(recs) > 6 {
		recs = recs[:6]
	}
	return recs
}

func warnings(t Tier, rain3 float64) []string {
	var warns []string

	switch t {
	case TierVeryHigh:
		warns = append(warns,
			"অবিলম্বে নিরাপদ আশ্রয়ে যান",
			"স্থানীয় কর্তৃপক্ষের নির্দেশনা অনুসরণ করুন",
		)
	case TierHigh:
		warns = append(warns,
			"তাৎক্ষণিক প্রস্তুতি গ্রহণ করুন",
			"পরিবারের সদস্যদের সতর্ক করুন",
		)
	}
	if rain3 > 100 {
		warns = append(warns, "ভারী বৃষ্টির সম্ভাবনা, সতর্ক থাকুন")
	}
	if rain3 > 150 {
		warns = append(warns, "অতি ভারী বৃষ্টি, আকস্মিক বন্যার সম্ভাবনা")
	}
	return warns
}
