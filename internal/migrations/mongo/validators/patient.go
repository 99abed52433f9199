package validators

import "go.mongodb.org/mongo-driver/bson"

var PatientValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"patient_id",
			"mrn",
			"first_name",
			"gender",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"patient_id": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 20,
			},

			"mrn": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"age": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  150,
			},

			"gender": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Male",
					"Female",
					"Other",
				},
			},

			"phone": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"alt_phone_1": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"alt_phone_2": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"cancer_site": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"stage": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
			},

			"diagnosis": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"registration_year": bson.M{
				"bsonType": "int",
				"minimum":  1900,
			},

			"address": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"city": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"state": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"estimated_dob": bson.M{
				"bsonType": "date",
			},

			"logged_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
