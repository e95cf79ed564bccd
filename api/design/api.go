package design

import (
	. "goa.design/goa/v3/dsl"
)

var _ = API("mangaart", func() {
	Title("Manga Art API")
	Description("Backend API for the Manga Art landing page inquiry form")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})
})

var FieldError = Type("FieldError", func() {
	Description("A rejected form field")
	Attribute("field", String, "JSON name of the field", func() {
		Enum("name", "email", "phone", "country", "message")
		Example("email")
	})
	Attribute("reason", String, "Why the value was rejected", func() {
		Example("must be a valid email address")
	})
	Required("field", "reason")
})

var ErrorBody = Type("ErrorBody", func() {
	Description("Error response")
	Attribute("code", String, "Error code", func() {
		Enum("BAD_REQUEST", "VALIDATION_ERROR", "STORAGE_FAILED", "STORAGE_UNAVAILABLE", "INTERNAL_ERROR")
		Example("VALIDATION_ERROR")
	})
	Attribute("message", String, "Error message", func() {
		Example("validation failed")
	})
	Attribute("fields", ArrayOf(FieldError), "Per-field errors, validation only")
	Attribute("request_id", String, "Request ID echoed in X-Request-ID")
	Required("code", "message")
})

// Health check
var _ = Service("health", func() {
	Description("Health check service")
	Error("unavailable", HealthResult)

	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
			Response("unavailable", StatusServiceUnavailable)
		})
	})
})

var HealthResult = ResultType("HealthResult", func() {
	Attribute("status", String, "Service status", func() {
		Enum("healthy", "unhealthy")
		Example("healthy")
	})
	Attribute("service", String, "Service name", func() {
		Example("Manga Art API")
	})
	Attribute("storage", String, "Active store variant", func() {
		Enum("postgres", "sqlite", "memory")
		Example("postgres")
	})
})

// Inquiry service
var _ = Service("inquiry", func() {
	Description("Inquiry form submissions")
	Error("bad_request", ErrorBody)
	Error("storage_unavailable", ErrorBody)

	Method("submit", func() {
		Description("Validate and store one inquiry, then relay it to the studio")
		Payload(SubmitInquiryPayload)
		Result(InquiryResult)
		HTTP(func() {
			POST("/api/v1/inquiries")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("storage_unavailable", StatusServiceUnavailable)
		})
	})
})

var SubmitInquiryPayload = Type("SubmitInquiryPayload", func() {
	Attribute("name", String, "Full name", func() {
		Example("Lina")
	})
	Attribute("email", String, "Email address", func() {
		Example("lina@example.com")
	})
	Attribute("phone", String, "Phone number; Arabic-Indic digits are accepted", func() {
		Example("٠١٢٣")
	})
	Attribute("country", String, "Country or timezone", func() {
		Example("Tunisia")
	})
	Attribute("message", String, "Message", func() {
		Example("Interested in lessons")
	})
})

var InquiryResult = ResultType("InquiryResult", func() {
	Attribute("id", UInt, "Inquiry ID", func() {
		Example(1)
	})
	Attribute("name", String, "Full name")
	Attribute("email", String, "Email address")
	Attribute("phone", String, "Phone number, ASCII digits")
	Attribute("country", String, "Country or timezone")
	Attribute("message", String, "Message")
	Attribute("created_at", String, "Creation time", func() {
		Format(FormatDateTime)
	})
	Required("id", "name", "email", "phone", "country", "message", "created_at")
})
