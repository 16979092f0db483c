// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import "fmt"

const systemInstruction = `You are a strict data extraction engine. You strictly process the provided input (image or text) and output a JSON array of menu items.

CRITICAL RULES:
1. ONLY extract items explicitly visible or listed in the source.
2. DO NOT invent, guess, or hallucinate dishes.
3. DO NOT use your internal knowledge to add items (e.g., do not add 'Tiramisu' just because it's an Italian restaurant, unless 'Tiramisu' is in the source).
4. If the source text is empty or unrelated, return an empty array.
5. Copy prices exactly as shown.`

const imagePrompt = `Extract all menu items VISIBLE in this image.

Strict Mode Instructions:
1. ONLY extract items that are explicitly written in the image text.
2. DO NOT hallucinate or add items from your internal knowledge base.
3. If a price is not visible, leave it empty.
4. For each extracted item, infer the course type, protein, cuisine, spiciness level, and dietary info based on the name and description found in the image.
5. If you are unsure if text is a dish, do NOT include it.`

const textPromptFormat = `Extract structured menu items STRICTLY from the provided Source Text below.

Source Text:
----------------
%s
----------------

Strict Instructions:
1. ONLY list items that are explicitly present in the Source Text above.
2. Do NOT add dishes from your internal knowledge base (e.g. do not add "Pizza" if it's not in the text).
3. Do NOT include headers, footers, or navigation links as dish names.
4. Parse dishes, descriptions, and prices.
5. Infer course, protein, cuisine, spiciness, and dietary tags based on the item details.
6. If the Source Text contains no menu items, return an empty array.`

const searchPromptFormat = `Find the official food menu for this restaurant URL: %s.
Retrieve the complete list of available dishes, descriptions, and prices.
IMPORTANT:
- Focus strictly on the menu section.
- Do not summarize. Return the raw menu text found.
- Do not include items from "People also search for" or reviews.
- If the menu is not directly available, state that no menu was found.`

func textPrompt(source string) string {
	return fmt.Sprintf(textPromptFormat, source)
}

func searchPrompt(url string) string {
	return fmt.Sprintf(searchPromptFormat, url)
}

// menuSchema constrains the model output to an array of menu records.
var menuSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"name":        map[string]any{"type": "STRING"},
			"description": map[string]any{"type": "STRING"},
			"price":       map[string]any{"type": "STRING"},
			"tags": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"course":    map[string]any{"type": "STRING", "enum": []string{"starter", "main", "dessert", "drink", "side", "unknown"}},
					"protein":   map[string]any{"type": "STRING"},
					"cuisine":   map[string]any{"type": "STRING"},
					"spiciness": map[string]any{"type": "STRING", "enum": []string{"none", "mild", "medium", "hot"}},
					"dietary": map[string]any{
						"type":  "ARRAY",
						"items": map[string]any{"type": "STRING"},
					},
				},
				"required": []string{"course", "protein", "spiciness", "dietary"},
			},
		},
		"required": []string{"name", "description", "price", "tags"},
	},
}
