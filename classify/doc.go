// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package classify classifies photos of waste with an external multimodal model.

# Flow

	client := classify.NewClient(classify.ClientConfig{APIKey: key})
	c := classify.NewClassifier(client, classify.DefaultStatusCodes())
	result, err := c.Classify(ctx, imageBase64)

Classify normalizes the payload to a data URI, sends it to the AI gateway's
chat-completions endpoint, extracts the JSON object from the answer and
validates it against the waste taxonomy.

# Parsing

ParseObject tries three strategies in order and keeps the first candidate
that decodes to a JSON object:

  - fenced: the body of a ```json or bare ``` block
  - brace_span: the first balanced {...} span
  - raw: the whole trimmed answer

# Validation

ValidateWasteType and ValidateConfidence return the sanitized value and
whether it was corrected. Unknown waste types become "other"; confidences
outside [0,1] become 0.5. All other fields pass through untouched.

# Errors

Failures are *Error values carrying the HTTP status and client message:

	400 Image data is required
	402 AI credits exhausted (upstream credits status)
	429 Rate limit exceeded (upstream rate limit status)
	500 not configured, upstream failure, invalid or unparsable response

The upstream statuses that mean "rate limited" and "out of credits" come
from StatusCodes and default to 429 and 402.
*/
package classify
