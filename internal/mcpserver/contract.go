package mcpserver

// DraftFormatContract describes the canonical JSON draft format that
// LLM consumers should follow when adding or replacing homes.
const DraftFormatContract = `# Othala Home Draft Contract

Every draft passed to the add_home tool MUST follow this structure.

## Structure

` + "```" + `json
{
  "info": {
    "address": "123 Bluebonnet Ln",
    "city": "Austin",
    "community": "Easton Park",
    "builder": "Example Homes",
    "property_tax": "2.1",
    "mud": "yes",
    "pid": "no",
    "hoa": "800",
    "hoa_includes": {"water": false, "internet": true},
    "restrictions": "",
    "isp": "ATT Fiber",
    "school_elem": "Newton Collins",
    "school_middle": "Ojeda",
    "school_high": "Del Valle",
    "notes": "South-facing backyard"
  },
  "photos": [
    {"url": "https://example.com/front.jpg"}
  ],
  "scores": [
    {"category": "Environmental", "name": "Flood zone", "grade": 4},
    {"category": "Vaastu", "name": "Main Entrance (East/North ok, South avoid)", "grade": 5}
  ]
}
` + "```" + `

## Rules

1. **` + "`" + `info.address` + "`" + ` is required** and must not be blank. Every other
   info field is optional free text.
2. **Scores are an entry array.** Each entry names a rubric criterion by its
   exact ` + "`" + `category` + "`" + ` and ` + "`" + `name` + "`" + `; call get_rubric first to see them.
3. **Graded criteria** take grades 1-5 (0 means unscored).
4. **Boolean criteria** take 5 (pass) or 0 (fail); nothing in between.
5. **Unknown criteria are kept but never counted**: only entries matching
   the rubric contribute to subtotals and the overall score.
6. **Photos** are either ` + "`" + `{"url": "..."}` + "`" + ` references or
   ` + "`" + `{"name", "mime_type", "bytes"}` + "`" + ` blobs with base64 bytes. The first
   photo is the primary thumbnail.
7. Replacements go through the HTTP API's PUT with the complete merged
   draft; there are no partial updates.
`
