package mysql

const hotelColumns = `
  id, owner_id, name, city, country, description, type,
  adult_count, child_count, facilities, price_per_night, star_rating,
  image_urls, last_updated
`

const insertHotelSQL = `
INSERT INTO hotels
  (id, owner_id, name, city, country, description, type,
   adult_count, child_count, facilities, price_per_night, star_rating,
   image_urls, last_updated)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Owner id is part of the predicate, not the payload: updates never move a
// hotel between owners.
const updateHotelSQL = `
UPDATE hotels SET
  name            = ?,
  city            = ?,
  country         = ?,
  description     = ?,
  type            = ?,
  adult_count     = ?,
  child_count     = ?,
  facilities      = ?,
  price_per_night = ?,
  star_rating     = ?,
  image_urls      = ?,
  last_updated    = ?
WHERE id = ? AND owner_id = ?
`

const getHotelSQL = `SELECT` + hotelColumns + `FROM hotels WHERE id = ?`

const getOwnedHotelSQL = `SELECT` + hotelColumns + `FROM hotels WHERE id = ? AND owner_id = ?`

const listOwnedHotelsSQL = `SELECT` + hotelColumns + `FROM hotels WHERE owner_id = ? ORDER BY seq`

// seq is the auto-increment insertion counter; snapshot order is the stable
// tie-break for every search sort.
const snapshotSQL = `SELECT` + hotelColumns + `FROM hotels ORDER BY seq`

const bookingColumns = `
  id, user_id, first_name, last_name, email,
  adult_count, child_count, check_in, check_out, total_cost,
  idempotency_key, created_at`

const listBookingsSQL = `SELECT` + bookingColumns + `
FROM bookings WHERE hotel_id = ? ORDER BY created_at, id`

const getBookingByKeySQL = `SELECT` + bookingColumns + `
FROM bookings WHERE hotel_id = ? AND idempotency_key = ?`

const insertBookingSQL = `
INSERT INTO bookings
  (id, hotel_id, user_id, first_name, last_name, email,
   adult_count, child_count, check_in, check_out, total_cost,
   idempotency_key, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Locks the price row so the cost snapshot and the append commit together.
const lockHotelPriceSQL = `SELECT price_per_night FROM hotels WHERE id = ? FOR UPDATE`

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, first_name, last_name)
VALUES (?, ?, ?, ?, ?)
`

const updateUserSQL = `
UPDATE users SET email = ?, password_hash = ?, first_name = ?, last_name = ?
WHERE id = ?
`

const getUserSQL = `
SELECT id, email, password_hash, first_name, last_name FROM users WHERE id = ?
`

const getUserByEmailSQL = `
SELECT id, email, password_hash, first_name, last_name FROM users WHERE email = ?
`
