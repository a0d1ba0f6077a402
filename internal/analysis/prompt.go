package analysis

import (
	"fmt"

	"github.com/justestif/emotify/internal/song"
)

const promptTemplate = `You are an expert music analyst. Analyze the song "%s" by %s.

Provide a DETAILED and ACCURATE emotional analysis based on your knowledge of this specific song. Do NOT provide generic responses.

Return a JSON object with this EXACT structure:
{
    "overall_tone": "A detailed 2-3 sentence description of the song's emotional atmosphere",
    "primary_emotions": [
        {"emotion": "Emotion1", "intensity": 0-10, "description": "Specific evidence from the song"},
        {"emotion": "Emotion2", "intensity": 0-10, "description": "Specific evidence from the song"},
        {"emotion": "Emotion3", "intensity": 0-10, "description": "Specific evidence from the song"},
        {"emotion": "Emotion4", "intensity": 0-10, "description": "Specific evidence from the song"}
    ],
    "mood": "Specific mood classification",
    "themes": "Detailed description of thematic elements (3-4 sentences)",
    "emotional_keywords": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5", "keyword6", "keyword7", "keyword8", "keyword9", "keyword10", "keyword11", "keyword12", "keyword13", "keyword14", "keyword15"],
    "tempo_energy": "slow/medium/fast",
    "valence": "positive/negative/mixed",
    "lyrical_themes": ["theme1", "theme2", "theme3"],
    "emotional_arc": "Description of how emotions change throughout the song",
    "musical_elements": "Description of how instrumentation/production affects emotions"
}

Return exactly %d primary emotions and exactly %d emotional keywords.
Be specific to THIS song. Include actual details about the lyrics' themes, the musical production, and emotional journey.`

// BuildPrompt returns the analysis prompt for s.
func BuildPrompt(s song.Candidate) string {
	return fmt.Sprintf(promptTemplate, s.Title, s.Artist, PrimaryEmotionCount, KeywordCount)
}
