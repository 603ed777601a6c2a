package graphql

// Schema is the SDL served at /graphql. Field names follow the REST JSON
// representation so both surfaces expose the same shapes. Queries are open,
// mutations are role-checked in the resolver.
const Schema = `
type Practice {
  id: ID!
  name: String!
  address: String
  phone_number: String
  email: String
}

type Patient {
  id: ID!
  name: String!
  birth_date: String
  phone_number: String
  address: String
}

type Physician {
  id: ID!
  version: Int!
  name: String!
  field_of_specialty: String
  specialty_code: String
  phone_number: String
  birth_date: String
  keywords: [String!]!
  practice: Practice
  patients: [Patient!]!
}

type PhysicianPage {
  content: [Physician!]!
  total_elements: Int!
  page: Int!
  size: Int!
}

input SearchCriteriaInput {
  name: String
  birth_date: String
  specialty_code: String
  phone_number: String
  field_of_specialty: String
  practice_name: String
  javascript: String
  typescript: String
  java: String
  python: String
}

input PracticeInput {
  name: String!
  address: String
  phone_number: String
  email: String
}

input PatientInput {
  name: String!
  birth_date: String!
  phone_number: String
  address: String
}

input CreatePhysicianInput {
  name: String!
  field_of_specialty: String!
  specialty_code: String!
  phone_number: String!
  birth_date: String!
  keywords: [String!]
  practice: PracticeInput!
  patients: [PatientInput!]
}

input UpdatePhysicianInput {
  name: String!
  field_of_specialty: String!
  specialty_code: String!
  phone_number: String!
  birth_date: String!
  keywords: [String!]
}

type Query {
  physician(id: ID!): Physician
  physicians(criteria: SearchCriteriaInput, page: Int, size: Int): PhysicianPage!
}

type Mutation {
  createPhysician(input: CreatePhysicianInput!): Physician!
  updatePhysician(id: ID!, version: Int!, input: UpdatePhysicianInput!): Int!
  deletePhysician(id: ID!): Boolean!
}
`
