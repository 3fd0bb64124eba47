package store

// Movie queries
const (
	queryInsertMovie = `
		INSERT INTO movies (id, title, director, release_date, original_language,
			distributor, description, price, genre, rating, score)
		VALUES (nextval('movies_id_seq'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	queryUpdateMovie = `
		UPDATE movies SET
			title = ?,
			director = ?,
			release_date = ?,
			original_language = ?,
			distributor = ?,
			description = ?,
			price = ?,
			genre = ?,
			rating = ?,
			score = ?
		WHERE id = ?`

	queryDeleteMovie = `DELETE FROM movies WHERE id = ?`
)
