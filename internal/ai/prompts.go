package ai

const classifySystemPrompt = `You are an AI assistant that classifies campus feed posts into these categories:
- EVENT: workshops, seminars, fests, meetings, conferences, competitions
- LOST: missing items, lost belongings
- FOUND: discovered items, found belongings
- ANNOUNCEMENT: notices, timetables, campus updates, academic announcements

Extract relevant information and return only JSON with:
{
  "type": "EVENT|LOST|FOUND|ANNOUNCEMENT",
  "confidence": 0.0-1.0,
  "extractedData": {
    "title": "extracted title",
    "description": "full description",
    "location": "extracted location",
    "eventDate": "extracted date for events",
    "itemName": "item name for lost/found",
    "department": "department for announcements"
  }
}`

const toxicitySystemPrompt = `Analyze the following text for toxicity, harassment, hate speech, or inappropriate content.
Return only JSON with:
{
  "isToxic": true/false,
  "toxicityScore": 0.0-1.0,
  "suggestion": "alternative phrasing if toxic"
}`

const (
	classifyTemperature = 0.3
	toxicityTemperature = 0.1
)
