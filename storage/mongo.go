package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careloop/careboard/models"
)

// MongoStore keeps posts and comments in two collections. Linkage uses
// $addToSet so a retried link can never produce a duplicate child entry.
type MongoStore struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

// NewMongoStore wires a ForumStore over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
	}
}

func (s *MongoStore) InsertPost(ctx context.Context, post *models.ForumPost) error {
	_, err := s.posts.InsertOne(ctx, post)
	return err
}

func (s *MongoStore) FindPost(ctx context.Context, id string) (*models.ForumPost, error) {
	var post models.ForumPost
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoStore) ListPosts(ctx context.Context) ([]models.ForumPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.ForumPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoStore) InsertComment(ctx context.Context, comment *models.ForumComment) error {
	_, err := s.comments.InsertOne(ctx, comment)
	return err
}

func (s *MongoStore) FindComment(ctx context.Context, id string) (*models.ForumComment, error) {
	var comment models.ForumComment
	err := s.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *MongoStore) FindComments(ctx context.Context, ids []string) ([]models.ForumComment, error) {
	if len(ids) == 0 {
		return []models.ForumComment{}, nil
	}
	cursor, err := s.comments.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.ForumComment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *MongoStore) LinkPostComment(ctx context.Context, postID, commentID string) error {
	res, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"comments": commentID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) LinkCommentReply(ctx context.Context, parentID, commentID string) error {
	res, err := s.comments.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{"$addToSet": bson.M{"replies": commentID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
