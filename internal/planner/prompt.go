package planner

import (
	"fmt"
	"strings"
)

// NoContextSentinel is the context string used when retrieval returns
// nothing. BuildPrompt detects it and switches to the knowledge-only
// instruction branch.
const NoContextSentinel = "No specific information available for this destination."

// BuildPrompt renders the itinerary-generation prompt. It is a pure
// function of the request and the retrieved context: same inputs, same
// prompt. When context is empty or the no-context sentinel, the prompt
// instructs the model to plan from general knowledge instead of
// prioritizing retrieved passages.
func BuildPrompt(req PlanRequest, context string) string {
	hasContext := context != "" && !strings.Contains(context, "No specific information available")

	var contextInstruction string
	if hasContext {
		contextInstruction = fmt.Sprintf(`**Retrieved Information (PRIORITIZE THIS):**
%s

**Instructions:**
1. PRIORITIZE information from the retrieved context above
2. Use specific attractions, prices, and details from the context
3. Supplement with your general knowledge only when context is insufficient`, context)
	} else {
		contextInstruction = fmt.Sprintf(`**Note:** No specific database information available for %s.

**Instructions:**
1. Use your extensive knowledge about %s to create an authentic itinerary
2. Provide realistic attraction names, descriptions, and estimated costs
3. Ensure all recommendations are genuine and practical`, req.Destination, req.Destination)
	}

	return fmt.Sprintf(`You are an expert travel planner. Create a detailed, personalized day-by-day travel itinerary.

**User Request:**
- Destination: %s
- Duration: %d days
- Budget: $%.0f USD total
- Travel Style: %s

%s

**Required JSON Structure:**
{
  "destination": "%s",
  "total_days": %d,
  "total_budget": %.1f,
  "travel_style": "%s",
  "days": [
    {
      "day": 1,
      "title": "Day title/theme (e.g., 'Exploring Historic Downtown')",
      "morning": [
        {
          "name": "Attraction name",
          "description": "Brief engaging description",
          "duration": "Estimated time (e.g., '2 hours')",
          "estimated_cost": 25.0
        }
      ],
      "afternoon": [...],
      "evening": [...],
      "accommodation": "Hotel/area suggestion matching budget level",
      "daily_budget": 200.0
    }
  ],
  "transport": [
    {
      "type": "Transportation type (e.g., 'Metro', 'Taxi', 'Airport Transfer')",
      "details": "Specific details and routes",
      "estimated_cost": 100.0
    }
  ],
  "tips": ["Practical travel tip 1", "Local insight 2", "Safety/cultural tip 3"]
}

**Planning Guidelines:**
1. Distribute activities logically across %d days
2. Morning (9am-12pm): 2-3 major attractions
3. Afternoon (1pm-5pm): 2-3 activities/attractions
4. Evening (6pm-10pm): 1-2 dining/entertainment activities
5. Ensure daily budgets sum to approximately $%.0f
6. Match accommodation and activities to "%s" style
7. Include 3-5 practical, specific travel tips
8. All costs should be realistic estimates in USD

Return ONLY valid JSON, no markdown formatting or additional text.`,
		req.Destination, req.Days, req.Budget, req.TravelStyle,
		contextInstruction,
		req.Destination, req.Days, req.Budget, req.TravelStyle,
		req.Days, req.Budget, req.TravelStyle)
}

// guidePromptTemplate drives auto-generation of a city guide when a
// destination has no stored knowledge. The generated text is ingested
// like any hand-written guide.
const guidePromptTemplate = `You are a professional travel guide writer. Provide accurate, specific, practical information with realistic pricing.

Create a comprehensive, detailed travel guide for %s, %s.

Include:

1. **Overview**: Brief introduction (2-3 sentences)

2. **Must-Visit Attractions** (8-10 with specific details):
   - Name, description, entry cost (local + USD), notable features

3. **Transportation**:
   - Airport transfers, public transit, costs, tourist passes

4. **Accommodation** (USD per night):
   - Budget, mid-range, luxury options with areas

5. **Food & Dining** (typical USD costs):
   - Street food, mid-range, fine dining, must-try dishes

6. **Travel Tips** (5-7 practical tips):
   - Best time, customs, safety, money-saving, language

7. **Hidden Gems** (2-3 lesser-known spots)

Be specific with prices and practical details.
Format as plain text with clear sections.`

// BuildGuidePrompt renders the prompt used to auto-generate a travel
// guide for a city with no stored knowledge.
func BuildGuidePrompt(city, country string) string {
	return fmt.Sprintf(guidePromptTemplate, city, country)
}
