package prompt

// DefaultLanguage is the default translation target.
const DefaultLanguage = "English"

// Defaults returns the built-in prompt set.
func Defaults() []Prompt {
	builtin := []struct{ id, name, text string }{
		{
			"improve", "Improve",
			"Act as a professional editor. Please make suggestions how to improve clarity, readability, grammar, and language of the following text. Preserve the original meaning and any technical jargon. Suggest structural changes only if they significantly improve flow or understanding. Avoid unnecessary expansion or major reformatting (e.g., no unwarranted lists). Try to make as little changes as possible, refrain from doing any changes when the writing is already sufficiently clear and concise. Output only the revised text and nothing else. The text is:",
		},
		{
			"shorten", "Shorten",
			"Act as a professional editor. Shorten the following text while preserving its meaning and clarity. Output only the revised text and nothing else. The text is:",
		},
		{
			"lengthen", "Lengthen",
			"Act as a professional editor. Expand and elaborate the following text for greater detail and depth, but do not add unrelated information. Output only the revised text and nothing else. The text is:",
		},
		{
			"fix-grammar", "Fix grammar",
			"Act as a professional proofreader. Correct any grammatical, spelling, or punctuation errors in the following text. Output only the revised text and nothing else. The text is:",
		},
		{
			"simplify-language", "Simplify language",
			"Act as a professional editor. Rewrite the following text in simpler language, making it easier to understand while preserving the original meaning. Output only the revised text and nothing else. The text is:",
		},
		{
			"enhance-readability", "Enhance readability",
			"Act as a professional editor. Improve the readability and flow of the following text. Output only the revised text and nothing else. The text is:",
		},
		{
			"mind-the-context", "Mind the Context!",
			"Act as a professional editor. You will receive a text selection, and a context. Do to the text whatever the context says, strictly. Output only the revised text and nothing else. The text is:",
		},
		{
			TranslateID, "Translate to " + DefaultLanguage + " (autodetects source language)",
			"Act as a professional translator. Automatically detect language and translate the following text to {language}, preserving meaning, tone, format and style. Output only the translated text and nothing else. The text is:",
		},
	}

	out := make([]Prompt, 0, len(builtin))
	for _, b := range builtin {
		out = append(out, Prompt{
			ID:            b.id,
			Name:          b.name,
			Text:          b.text,
			IsDefault:     true,
			Enabled:       true,
			ShowInPalette: true,
		})
	}
	return out
}
