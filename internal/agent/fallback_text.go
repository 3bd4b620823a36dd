package agent

var briefs = map[Language]map[Brief]string{
	English: {
		BriefDevelopers: `Dubai's notable real estate developers:

1. Emaar Properties
• Developer of Downtown Dubai, Dubai Hills Estate and Arabian Ranches

2. Nakheel
• Known for Palm Jumeirah, Jumeirah Islands and Deira Islands

3. DAMAC Properties
• Luxury towers in Business Bay and the DAMAC Hills communities

4. Sobha Realty
• Premium villas and apartments in Sobha Hartland, MBR City

5. Meraas
• Lifestyle destinations such as City Walk and Bluewaters Island

Tell me your budget and preferred area and I can suggest properties from these developers.`,

		BriefRequirements: `I'd be happy to help you find the right property in Dubai.

Please share your requirements:

1. Budget
• Your price range in AED

2. Location
• Preferred areas such as Dubai Marina, Downtown or Palm Jumeirah

3. Property type
• Apartment, villa, studio, penthouse or townhouse

4. Bedrooms
• Number of bedrooms you need

5. Amenities
• Pool, gym, parking, beach access or garden`,

		BriefWelcome: "Welcome to Dubai Real Estate! I can help you find properties in Dubai. " +
			"Please tell me about your requirements - budget, preferred locations, and property type.",
	},

	Arabic: {
		BriefDevelopers: `أبرز المطورين العقاريين في دبي:

1. إعمار العقارية
• مطور وسط مدينة دبي ودبي هيلز إستيت والمرابع العربية

2. نخيل
• معروفة بنخلة جميرا وجزر جميرا وجزر ديرة

3. داماك العقارية
• أبراج فاخرة في الخليج التجاري ومجتمعات داماك هيلز

4. شوبا العقارية
• فلل وشقق راقية في شوبا هارتلاند بمدينة محمد بن راشد

5. مراس
• وجهات عصرية مثل سيتي ووك وجزيرة بلوواترز

أخبرني بميزانيتك والمنطقة المفضلة لديك وسأقترح عليك عقارات من هؤلاء المطورين.`,

		BriefRequirements: `يسعدني مساعدتك في العثور على العقار المناسب في دبي.

يرجى مشاركة متطلباتك:

1. الميزانية
• نطاق السعر بالدرهم الإماراتي

2. الموقع
• المناطق المفضلة مثل دبي مارينا أو وسط المدينة أو نخلة جميرا

3. نوع العقار
• شقة أو فيلا أو استوديو أو بنتهاوس أو تاون هاوس

4. غرف النوم
• عدد غرف النوم التي تحتاجها

5. المرافق
• مسبح أو نادٍ رياضي أو موقف سيارات أو إطلالة على الشاطئ أو حديقة`,

		BriefWelcome: "مرحباً بك في دبي للعقارات! يمكنني مساعدتك في العثور على عقارات في دبي. " +
			"يرجى إخباري بمتطلباتك - الميزانية والمواقع المفضلة ونوع العقار.",
	},

	Tamil: {
		BriefDevelopers: `டுபாயின் முக்கிய ரியல் எஸ்டேட் நிறுவனங்கள்:

1. எமார் பிராப்பர்டீஸ்
• டவுன்டவுன் டுபாய், டுபாய் ஹில்ஸ் எஸ்டேட் மற்றும் அரேபியன் ரான்சஸ் ஆகியவற்றை உருவாக்கியது

2. நக்கீல்
• பாம் ஜுமேரா மற்றும் ஜுமேரா தீவுகளுக்கு பிரபலமானது

3. டமாக் பிராப்பர்டீஸ்
• பிசினஸ் பே பகுதியில் ஆடம்பர கோபுரங்கள் மற்றும் டமாக் ஹில்ஸ் குடியிருப்புகள்

4. சோபா ரியல்டி
• சோபா ஹார்ட்லேண்டில் உயர்தர வில்லாக்கள் மற்றும் அடுக்குமாடி வீடுகள்

5. மெராஸ்
• சிட்டி வாக் மற்றும் ப்ளூவாட்டர்ஸ் தீவு போன்ற வாழ்க்கைமுறை இடங்கள்

உங்கள் பட்ஜெட் மற்றும் விருப்பமான பகுதியைச் சொல்லுங்கள், இந்த நிறுவனங்களின் வீடுகளை பரிந்துரைக்கிறேன்.`,

		BriefRequirements: `டுபாயில் உங்களுக்கு ஏற்ற வீட்டைக் கண்டுபிடிக்க மகிழ்ச்சியுடன் உதவுகிறேன்.

தயவு செய்து உங்கள் தேவைகளைப் பகிருங்கள்:

1. பட்ஜெட்
• AED இல் உங்கள் விலை வரம்பு

2. இடம்
• டுபாய் மரீனா, டவுன்டவுன் அல்லது பாம் ஜுமேரா போன்ற விருப்பமான பகுதிகள்

3. வீட்டு வகை
• அடுக்குமாடி, வில்லா, ஸ்டுடியோ, பென்ட்ஹவுஸ் அல்லது டவுன்ஹவுஸ்

4. படுக்கையறைகள்
• உங்களுக்குத் தேவையான படுக்கையறைகளின் எண்ணிக்கை

5. வசதிகள்
• நீச்சல் குளம், உடற்பயிற்சி கூடம், வாகன நிறுத்தம், கடற்கரை அணுகல் அல்லது தோட்டம்`,

		BriefWelcome: "டுபாய் ரியல் எஸ்டேட்டுக்கு வரவேற்கிறோம்! டுபாயில் உள்ள வீடுகளை கண்டுபிடிக்க நான் உதவ முடியும். " +
			"தயவு செய்து உங்கள் தேவைகளைச் சொல்லுங்கள் - பட்ஜெட், விருப்பமான இடங்கள் மற்றும் வீடு வகை.",
	},
}

var redirects = map[Language]string{
	English: "I specialise in Dubai real estate, so I can't help with that topic. " +
		"I'd be glad to help you buy, rent or invest in property in Dubai. What kind of property are you looking for?",
	Arabic: "أنا متخصص في عقارات دبي، لذلك لا يمكنني المساعدة في هذا الموضوع. " +
		"يسعدني مساعدتك في شراء أو استئجار أو الاستثمار في عقار في دبي. ما نوع العقار الذي تبحث عنه؟",
	Tamil: "நான் டுபாய் ரியல் எஸ்டேட்டில் நிபுணத்துவம் பெற்றவன், எனவே அந்த தலைப்பில் உதவ முடியாது. " +
		"டுபாயில் வீடு வாங்க, வாடகைக்கு எடுக்க அல்லது முதலீடு செய்ய மகிழ்ச்சியுடன் உதவுகிறேன். நீங்கள் எந்த வகையான வீட்டைத் தேடுகிறீர்கள்?",
}

// Keywords that pick a brief. Developer terms are checked first.
var (
	developerKeywords = []string{
		"developer", "company", "companies", "builder", "brand",
		"emaar", "damac", "nakheel", "sobha", "meraas",
		"مطور", "شركة", "شركات",
		"நிறுவன", "டெவலப்பர்",
	}
	propertyKeywords = []string{
		"property", "properties", "house", "apartment", "villa", "flat", "home",
		"عقار", "شقة", "فيلا", "منزل", "بيت",
		"வீடு", "சொத்து", "அடுக்குமாடி",
	}
)
